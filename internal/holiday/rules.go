package holiday

import "time"

// Rule computes the date of a single named observance for a given year.
type Rule interface {
	Label() string
	On(year int) Date
}

// FixedRule is an observance on the same month and day every year.
type FixedRule struct {
	Month time.Month
	Day   int
	Name  string
}

func (r FixedRule) Label() string { return r.Name }

func (r FixedRule) On(year int) Date {
	return Date{Year: year, Month: r.Month, Day: r.Day}
}

// EasterRule is a movable observance Offset days from Easter Sunday.
type EasterRule struct {
	Offset int
	Name   string
}

func (r EasterRule) Label() string { return r.Name }

func (r EasterRule) On(year int) Date {
	return Easter(year).AddDays(r.Offset)
}

// WeekdayRule is the N-th Weekday of Month, shifted by Offset days.
type WeekdayRule struct {
	Month   time.Month
	Weekday time.Weekday
	N       int
	Offset  int
	Name    string
}

func (r WeekdayRule) Label() string { return r.Name }

func (r WeekdayRule) On(year int) Date {
	return NthWeekday(year, r.Month, r.Weekday, r.N).AddDays(r.Offset)
}

// RegionRuleSet maps a region code to its fixed-date observances.
type RegionRuleSet map[string][]FixedRule

func (s RegionRuleSet) clone() RegionRuleSet {
	out := make(RegionRuleSet, len(s))
	for code, rules := range s {
		out[code] = append([]FixedRule(nil), rules...)
	}
	return out
}

// Easter-relative offsets of the movable observances.
const (
	CarnivalOffset       = -47
	GoodFridayOffset     = -2
	CorpusChristiOffset  = 60
	blackFridayOffset    = 1
	thanksgivingSequence = 4
)

// NationalRules returns the nationwide observance table. Seasonal markers are
// fixed calendar dates, not astronomical equinoxes and solstices. Each call
// returns a new slice.
func NationalRules() []Rule {
	return []Rule{
		FixedRule{time.January, 1, "Confraternização Universal"},
		FixedRule{time.January, 4, "Dia Mundial do Braille"},
		FixedRule{time.January, 6, "Dia de Reis / Dia da Gratidão"},
		FixedRule{time.January, 7, "Dia do Leitor"},
		FixedRule{time.January, 15, "Dia Mundial do Compositor"},
		FixedRule{time.January, 30, "Dia da Saudade"},
		FixedRule{time.February, 1, "Dia do Publicitário"},
		FixedRule{time.February, 10, "Dia da Pizza (BR)"},
		FixedRule{time.February, 14, "Dia de São Valentim"},
		FixedRule{time.February, 19, "Dia do Esportista"},
		FixedRule{time.March, 8, "Dia Internacional da Mulher"},
		FixedRule{time.March, 15, "Dia do Consumidor"},
		FixedRule{time.March, 20, "Início do Outono"},
		FixedRule{time.March, 20, "Dia Internacional da Felicidade"},
		FixedRule{time.March, 21, "Dia Mundial da Poesia"},
		FixedRule{time.March, 22, "Dia Mundial da Água"},
		FixedRule{time.April, 1, "Dia da Mentira"},
		FixedRule{time.April, 7, "Dia Mundial da Saúde / Dia do Jornalista"},
		FixedRule{time.April, 13, "Dia do Beijo"},
		FixedRule{time.April, 18, "Dia Nacional do Livro Infantil"},
		FixedRule{time.April, 21, "Tiradentes"},
		FixedRule{time.April, 22, "Descobrimento do Brasil"},
		FixedRule{time.April, 23, "Dia Mundial do Livro"},
		FixedRule{time.April, 28, "Dia da Educação"},
		FixedRule{time.May, 1, "Dia do Trabalho"},
		FixedRule{time.May, 13, "Dia do Automóvel"},
		FixedRule{time.May, 25, "Dia do Orgulho Geek / Dia da Toalha"},
		FixedRule{time.May, 28, "Dia Mundial do Hambúrguer"},
		FixedRule{time.June, 1, "Dia da Imprensa"},
		FixedRule{time.June, 5, "Dia Mundial do Meio Ambiente"},
		FixedRule{time.June, 12, "Dia dos Namorados"},
		FixedRule{time.June, 21, "Início do Inverno"},
		FixedRule{time.June, 21, "Dia do Mídia"},
		FixedRule{time.June, 24, "São João"},
		FixedRule{time.June, 28, "Dia do Orgulho LGBTQIA+"},
		FixedRule{time.July, 10, "Dia da Pizza"},
		FixedRule{time.July, 13, "Dia Mundial do Rock"},
		FixedRule{time.July, 15, "Dia do Homem"},
		FixedRule{time.July, 20, "Dia do Amigo"},
		FixedRule{time.July, 25, "Dia do Motorista / Dia do Escritor"},
		FixedRule{time.July, 26, "Dia dos Avós"},
		FixedRule{time.August, 11, "Dia do Estudante / Dia do Advogado"},
		FixedRule{time.August, 15, "Dia dos Solteiros"},
		FixedRule{time.August, 19, "Dia Mundial da Fotografia"},
		FixedRule{time.September, 7, "Independência do Brasil"},
		FixedRule{time.September, 15, "Dia do Cliente"},
		FixedRule{time.September, 22, "Início da Primavera"},
		FixedRule{time.September, 21, "Dia da Árvore"},
		FixedRule{time.September, 22, "Dia Mundial Sem Carro"},
		FixedRule{time.September, 27, "Dia Mundial do Turismo"},
		FixedRule{time.September, 30, "Dia da Secretária"},
		FixedRule{time.October, 1, "Dia do Vendedor"},
		FixedRule{time.October, 4, "Dia Mundial dos Animais"},
		FixedRule{time.October, 12, "Nossa Senhora Aparecida / Dia das Crianças"},
		FixedRule{time.October, 15, "Dia do Professor"},
		FixedRule{time.October, 25, "Dia do Macarrão"},
		FixedRule{time.October, 31, "Dia das Bruxas (Halloween)"},
		FixedRule{time.November, 2, "Finados"},
		FixedRule{time.November, 15, "Proclamação da República"},
		FixedRule{time.November, 19, "Dia da Bandeira"},
		FixedRule{time.November, 20, "Dia da Consciência Negra"},
		FixedRule{time.December, 21, "Início do Verão"},
		FixedRule{time.December, 24, "Véspera de Natal"},
		FixedRule{time.December, 25, "Natal"},
		FixedRule{time.December, 31, "Véspera de Ano Novo"},

		EasterRule{CarnivalOffset, "Carnaval"},
		EasterRule{GoodFridayOffset, "Sexta-feira Santa"},
		EasterRule{CorpusChristiOffset, "Corpus Christi"},

		WeekdayRule{Month: time.May, Weekday: time.Sunday, N: 2, Name: "Dia das Mães"},
		WeekdayRule{Month: time.August, Weekday: time.Sunday, N: 2, Name: "Dia dos Pais"},
		WeekdayRule{
			Month:   time.November,
			Weekday: time.Thursday,
			N:       thanksgivingSequence,
			Offset:  blackFridayOffset,
			Name:    "Black Friday",
		},
	}
}

// RegionRules returns the state-level overlays keyed by two-letter state
// code. Each call returns a new map.
func RegionRules() RegionRuleSet {
	return RegionRuleSet{
		"SP": {
			{time.January, 25, "Aniversário de São Paulo"},
			{time.July, 9, "Revolução Constitucionalista de 1932"},
			{time.November, 20, "Dia da Consciência Negra"},
		},
		"RJ": {
			{time.January, 20, "Dia de São Sebastião"},
			{time.April, 23, "Dia de São Jorge"},
			{time.November, 20, "Dia da Consciência Negra"},
		},
		"AL": {
			{time.June, 24, "São João"},
			{time.June, 29, "São Pedro"},
			{time.September, 16, "Emancipação Política de Alagoas"},
			{time.November, 20, "Dia da Consciência Negra (Morte de Zumbi)"},
		},
		"BA": {
			{time.July, 2, "Independência da Bahia"},
		},
		"RS": {
			{time.September, 20, "Revolução Farroupilha (Dia do Gaúcho)"},
		},
		"AM": {
			{time.September, 5, "Elevação do Amazonas à categoria de província"},
			{time.November, 20, "Dia da Consciência Negra"},
		},
		"MG": {
			{time.April, 21, "Data Magna de Minas Gerais (coincide com Tiradentes)"},
		},
		"CE": {
			{time.March, 19, "Dia de São José"},
			{time.March, 25, "Data Magna do Ceará"},
		},
		"DF": {
			{time.April, 21, "Aniversário de Brasília"},
			{time.November, 30, "Dia do Evangélico"},
		},
		"MA": {
			{time.July, 28, "Adesão do Maranhão à Independência"},
		},
		"PR": {
			{time.December, 19, "Emancipação Política do Paraná"},
		},
	}
}
