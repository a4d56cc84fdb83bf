package weather

// regionToCapital maps the IBGE region names used in INMET warnings to
// the monitored state capitals they cover.
var regionToCapital = map[string][]string{
	"Vale do Acre":                        {"Rio Branco"},
	"Vale do Juruá":                       {"Rio Branco"},
	"Leste Alagoano":                      {"Maceió"},
	"Sertão Alagoano":                     {"Maceió"},
	"Sul de Roraima":                      {"Boa Vista"},
	"Norte de Roraima":                    {"Boa Vista"},
	"Norte Amazonense":                    {"Manaus"},
	"Centro Amazonense":                   {"Manaus"},
	"Sudoeste Amazonense":                 {"Manaus"},
	"Sul Amazonense":                      {"Manaus"},
	"Sudoeste Paraense":                   {"Belém"},
	"Sudeste Paraense":                    {"Belém"},
	"Baixo Amazonas":                      {"Belém"},
	"Norte Maranhense":                    {"São Luís"},
	"Leste Maranhense":                    {"São Luís"},
	"Centro Maranhense":                   {"São Luís"},
	"Oeste Maranhense":                    {"São Luís"},
	"Sul Maranhense":                      {"São Luís"},
	"Norte Piauiense":                     {"Teresina"},
	"Centro-Norte Piauiense":              {"Teresina"},
	"Sudeste Piauiense":                   {"Teresina"},
	"Sudoeste Piauiense":                  {"Teresina"},
	"Norte Cearense":                      {"Fortaleza"},
	"Metropolitana de Fortaleza":          {"Fortaleza"},
	"Noroeste Cearense":                   {"Fortaleza"},
	"Centro-Sul Cearense":                 {"Fortaleza"},
	"Sul Cearense":                        {"Fortaleza"},
	"Jaguaribe":                           {"Fortaleza"},
	"Sertões Cearenses":                   {"Fortaleza"},
	"Oeste Potiguar":                      {"Natal"},
	"Central Potiguar":                    {"Natal"},
	"Leste Potiguar":                      {"Natal"},
	"Agreste Potiguar":                    {"Natal"},
	"Sertão Paraibano":                    {"João Pessoa"},
	"Borborema":                           {"João Pessoa"},
	"Agreste Paraibano":                   {"João Pessoa"},
	"Zona da Mata Paraibana":              {"João Pessoa"},
	"Sertão Pernambucano":                 {"Recife"},
	"São Francisco Pernambucano":          {"Recife"},
	"Agreste Pernambucano":                {"Recife"},
	"Metropolitana de Recife":             {"Recife"},
	"Metropolitana de Salvador":           {"Salvador"},
	"Sul Baiano":                          {"Salvador"},
	"Centro Sul Baiano":                   {"Salvador"},
	"Centro Norte Baiano":                 {"Salvador"},
	"Vale São-Franciscano da Bahia":       {"Salvador"},
	"Extremo Oeste Baiano":                {"Salvador"},
	"Nordeste Baiano":                     {"Salvador"},
	"Leste Sergipano":                     {"Aracaju"},
	"Metropolitana de Aracaju":            {"Aracaju"},
	"Noroeste de Minas":                   {"Belo Horizonte"},
	"Norte de Minas":                      {"Belo Horizonte"},
	"Jequitinhonha":                       {"Belo Horizonte"},
	"Vale do Mucuri":                      {"Belo Horizonte"},
	"Triângulo Mineiro/Alto Paranaíba":    {"Belo Horizonte"},
	"Central Mineira":                     {"Belo Horizonte"},
	"Metropolitana de Belo Horizonte":     {"Belo Horizonte"},
	"Vale do Rio Doce":                    {"Belo Horizonte"},
	"Oeste de Minas":                      {"Belo Horizonte"},
	"Sul/Sudoeste de Minas":               {"Belo Horizonte"},
	"Campo das Vertentes":                 {"Belo Horizonte"},
	"Zona da Mata":                        {"Belo Horizonte"},
	"Noroeste Espírito-santense":          {"Vitória"},
	"Litoral Norte Espírito-santense":     {"Vitória"},
	"Central Espírito-santense":           {"Vitória"},
	"Sul Espírito-santense":               {"Vitória"},
	"Norte Fluminense":                    {"Rio de Janeiro"},
	"Noroeste Fluminense":                 {"Rio de Janeiro"},
	"Centro Fluminense":                   {"Rio de Janeiro"},
	"Baixadas":                            {"Rio de Janeiro"},
	"Sul Fluminense":                      {"Rio de Janeiro"},
	"Metropolitana do Rio de Janeiro":     {"Rio de Janeiro"},
	"São José do Rio Preto":               {"São Paulo"},
	"Ribeirão Preto":                      {"São Paulo"},
	"Araçatuba":                           {"São Paulo"},
	"Bauru":                               {"São Paulo"},
	"Araraquara":                          {"São Paulo"},
	"Piracicaba":                          {"São Paulo"},
	"Campinas":                            {"São Paulo"},
	"Presidente Prudente":                 {"São Paulo"},
	"Marília":                             {"São Paulo"},
	"Assis":                               {"São Paulo"},
	"Itapetininga":                        {"São Paulo"},
	"Macro Metropolitana Paulista":        {"São Paulo"},
	"Vale do Paraíba Paulista":            {"São Paulo"},
	"Litoral Sul Paulista":                {"São Paulo"},
	"Metropolitana de São Paulo":          {"São Paulo"},
	"Noroeste Paranaense":                 {"Curitiba"},
	"Centro Ocidental Paranaense":         {"Curitiba"},
	"Norte Central Paranaense":            {"Curitiba"},
	"Norte Pioneiro Paranaense":           {"Curitiba"},
	"Centro Oriental Paranaense":          {"Curitiba"},
	"Oeste Paranaense":                    {"Curitiba"},
	"Sudoeste Paranaense":                 {"Curitiba"},
	"Centro-Sul Paranaense":               {"Curitiba"},
	"Sudeste Paranaense":                  {"Curitiba"},
	"Metropolitana de Curitiba":           {"Curitiba"},
	"Oeste Catarinense":                   {"Florianópolis"},
	"Norte Catarinense":                   {"Florianópolis"},
	"Serrana":                             {"Florianópolis"},
	"Vale do Itajaí":                      {"Florianópolis"},
	"Grande Florianópolis":                {"Florianópolis"},
	"Sul Catarinense":                     {"Florianópolis"},
	"Noroeste Rio-grandense":              {"Porto Alegre"},
	"Nordeste Rio-grandense":              {"Porto Alegre"},
	"Centro Ocidental Rio-grandense":      {"Porto Alegre"},
	"Centro Oriental Rio-grandense":       {"Porto Alegre"},
	"Metropolitana de Porto Alegre":       {"Porto Alegre"},
	"Sudoeste Rio-grandense":              {"Porto Alegre"},
	"Sudeste Rio-grandense":               {"Porto Alegre"},
	"Centro-Sul Mato-grossense":           {"Cuiabá"},
	"Norte Mato-grossense":                {"Cuiabá"},
	"Nordeste Mato-grossense":             {"Cuiabá"},
	"Sudeste Mato-grossense":              {"Cuiabá"},
	"Sudoeste Mato-grossense":             {"Cuiabá"},
	"Pantanais Sul Mato-grossense":        {"Campo Grande"},
	"Centro Norte de Mato Grosso do Sul":  {"Campo Grande"},
	"Leste de Mato Grosso do Sul":         {"Campo Grande"},
	"Sudoeste de Mato Grosso do Sul":      {"Campo Grande"},
	"Norte Goiano":                        {"Goiânia"},
	"Leste Goiano":                        {"Goiânia"},
	"Centro Goiano":                       {"Goiânia"},
	"Sul Goiano":                          {"Goiânia"},
	"Noroeste Goiano":                     {"Goiânia"},
	"Distrito Federal":                    {"Brasília"},
	"Ocidental do Tocantins":              {"Palmas"},
	"Oriental do Tocantins":               {"Palmas"},
	"Leste Rondoniense":                   {"Porto Velho"},
	"Madeira-Guaporé":                     {"Porto Velho"},
}

var normalizedRegionIndex = buildRegionIndex()

func buildRegionIndex() map[string][]string {
	idx := make(map[string][]string, len(regionToCapital))
	for region, capitals := range regionToCapital {
		idx[normalizeRegion(region)] = capitals
	}
	return idx
}

// CapitalsForRegion resolves a feed region name to monitored capitals,
// tolerating accent and hyphenation differences. Unknown regions map to
// nothing.
func CapitalsForRegion(region string) []string {
	return normalizedRegionIndex[normalizeRegion(region)]
}
