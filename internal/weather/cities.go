package weather

// City is a monitored location. Coordinates feed the forecast APIs;
// Name is the stable display identifier used in alert keys and ledgers.
type City struct {
	UF   string
	Name string
	Lat  float64
	Lon  float64
}

// Capitals lists the 27 Brazilian state capitals.
var Capitals = []City{
	{UF: "AC", Name: "Rio Branco", Lat: -9.97499, Lon: -67.82430},
	{UF: "AL", Name: "Maceió", Lat: -9.64985, Lon: -35.70895},
	{UF: "AP", Name: "Macapá", Lat: 0.03493, Lon: -51.06940},
	{UF: "AM", Name: "Manaus", Lat: -3.11903, Lon: -60.02173},
	{UF: "BA", Name: "Salvador", Lat: -12.97304, Lon: -38.50230},
	{UF: "CE", Name: "Fortaleza", Lat: -3.73186, Lon: -38.52667},
	{UF: "DF", Name: "Brasília", Lat: -15.79389, Lon: -47.88278},
	{UF: "ES", Name: "Vitória", Lat: -20.31550, Lon: -40.31280},
	{UF: "GO", Name: "Goiânia", Lat: -16.68640, Lon: -49.26430},
	{UF: "MA", Name: "São Luís", Lat: -2.53874, Lon: -44.28250},
	{UF: "MT", Name: "Cuiabá", Lat: -15.60100, Lon: -56.09740},
	{UF: "MS", Name: "Campo Grande", Lat: -20.46970, Lon: -54.62010},
	{UF: "MG", Name: "Belo Horizonte", Lat: -19.91668, Lon: -43.93449},
	{UF: "PA", Name: "Belém", Lat: -1.45502, Lon: -48.50240},
	{UF: "PB", Name: "João Pessoa", Lat: -7.11509, Lon: -34.86410},
	{UF: "PR", Name: "Curitiba", Lat: -25.42836, Lon: -49.27325},
	{UF: "PE", Name: "Recife", Lat: -8.04756, Lon: -34.87700},
	{UF: "PI", Name: "Teresina", Lat: -5.09194, Lon: -42.80336},
	{UF: "RJ", Name: "Rio de Janeiro", Lat: -22.90685, Lon: -43.17290},
	{UF: "RN", Name: "Natal", Lat: -5.79500, Lon: -35.20944},
	{UF: "RO", Name: "Porto Velho", Lat: -8.76077, Lon: -63.89990},
	{UF: "RR", Name: "Boa Vista", Lat: 2.82384, Lon: -60.67530},
	{UF: "RS", Name: "Porto Alegre", Lat: -30.03465, Lon: -51.21766},
	{UF: "SC", Name: "Florianópolis", Lat: -27.59450, Lon: -48.54770},
	{UF: "SE", Name: "Aracaju", Lat: -10.90910, Lon: -37.06770},
	{UF: "SP", Name: "São Paulo", Lat: -23.55052, Lon: -46.63331},
	{UF: "TO", Name: "Palmas", Lat: -10.18400, Lon: -48.33360},
}
