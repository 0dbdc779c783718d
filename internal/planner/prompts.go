package planner

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/holiday"
)

const analysisSystemPrompt = `Você é um analista de mercado sênior e consultor estratégico. Sua tarefa é produzir uma análise de mercado profunda para uma empresa, que será usada como base de um planejamento de marketing.

Responda SEMPRE com um único objeto JSON na estrutura solicitada, sem texto, comentários ou formatação adicional.`

const analysisOutputSchema = `{
  "marketOverview": {
    "title": "Visão Geral do Mercado de [Setor] em %[1]s",
    "opportunities": [{"point": "Oportunidade", "description": "Descrição concisa e estratégica."}],
    "challenges": [{"point": "Desafio", "description": "Descrição concisa e estratégica."}],
    "trends": [{"point": "Tendência", "description": "Descrição concisa e estratégica."}]
  },
  "psychographicProfile": {
    "title": "Raio-X do Cliente Ideal",
    "values": [{"point": "Valor", "description": "Como este valor guia as decisões do cliente."}],
    "lifestyle": [{"point": "Hábito", "description": "Como a empresa se encaixa neste hábito."}],
    "pains": [{"point": "Dor", "description": "Qual problema latente a empresa resolve."}]
  },
  "behavioralAnalysis": {
    "title": "Jornada de Compra Comportamental",
    "purchaseJourney": [
      {"stage": "Reconhecimento", "description": "Como o cliente descobre o problema.", "touchpoints": ["Redes Sociais"]},
      {"stage": "Consideração", "description": "O que o cliente pesquisa e compara.", "touchpoints": ["Reviews"]},
      {"stage": "Decisão", "description": "O que leva à compra.", "touchpoints": ["Depoimentos"]},
      {"stage": "Fidelização", "description": "Como manter o cliente engajado.", "touchpoints": ["Email Marketing"]}
    ]
  }
}`

const planSystemPrompt = `Você é um estrategista de marketing digital sênior. Sua tarefa é criar um plano tático mensal detalhado para uma empresa, fundamentado na análise de mercado fornecida.

Responda SEMPRE com um único objeto JSON na estrutura solicitada, sem texto, comentários ou formatação adicional.`

const planOutputSchema = `{
  "month": "%[1]s",
  "weeks": [
    {
      "week": 1,
      "theme": "Tema central e estratégico da semana, alinhado à análise.",
      "holidays": ["Data comemorativa da semana, se houver"],
      "ideiasGuia": [
        "Ideia 1: descreva a execução e o valor estratégico com base na análise.",
        "Ideia 2: ...",
        "Ideia 3: ...",
        "Ideia 4: ..."
      ],
      "trafficCampaign": {
        "platform": "Meta Ads (Instagram/Facebook) | Google Ads | TikTok Ads | LinkedIn Ads",
        "objective": "Objetivo da campanha e por quê.",
        "targetAudience": {
          "description": "Público (frio, morno, quente, lookalike, remarketing) e justificativa.",
          "location": "Cidades principais de %[2]s",
          "age": "28-45",
          "interests": ["interesse 1", "interesse 2"]
        },
        "adCopySuggestion": "Copy persuasiva baseada em um insight comportamental da análise.",
        "keywords": []
      }
    }
  ]
}`

const planRules = `**Regras:**
- Fundamente cada decisão na análise fornecida.
- Seja específico nos públicos (frio, morno, quente, lookalike, remarketing).
- Em campanhas de Google Ads, preencha "keywords".
- OBRIGATÓRIO: exatamente 4 "ideiasGuia" por semana e TODOS os campos preenchidos para as 4 semanas.`

// noHolidaysLine is listed when the month has no observances.
const noHolidaysLine = "Nenhuma data principal."

const ideasPromptTemplate = `Você é um criativo de marketing digital especializado em conteúdo de oportunidade.
Gere 3 ideias de conteúdo curtas, diretas e impactantes para a empresa abaixo, aproveitando a data comemorativa indicada.

**Empresa:**
"%s"

**Data comemorativa:**
- Nome: %s
- Data: %s

**Formato da resposta:**
Um objeto JSON com a chave "ideias" contendo um array de strings, uma ideia por string.
Exemplo: {"ideias": ["Live com especialistas sobre [tema].", "Carrossel com 3 dicas rápidas sobre [assunto].", "Oferta de 24h com a hashtag #[NomeDaData]."]}

Conecte as ideias ao negócio descrito. Gere EXATAMENTE 3 ideias.`

// AssistantName is how the chat assistant introduces itself.
const AssistantName = "Assistente de Estratégia Pauta"

const assistantSystemTemplate = `Você é um tutor de IA, especialista sênior em marketing digital, estratégia de negócios e inteligência de mercado. Seu nome é "%s".
Você SÓ PODE discutir o conteúdo do plano de marketing e da análise de mercado abaixo. Se o usuário perguntar algo fora desse escopo, recuse educadamente e traga a conversa de volta ao plano. Use o contexto para dar respostas precisas e detalhadas.

DADOS DE CONTEXTO (análise e plano gerado):
` + "```json\n%s\n```"

// WelcomeMessage opens every assistant transcript.
const WelcomeMessage = "Olá! Sou seu assistente de estratégia. Analisei todo o seu plano. Como posso ajudar a detalhar as estratégias ou campanhas para você?"

// emptyReplyText stands in for a blank model reply.
const emptyReplyText = "Não recebi uma resposta."

func buildAnalysisPrompt(description, regionName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Informações da Empresa:**\n%q\n\n", description)
	fmt.Fprintf(&b, "**Estado de Atuação:**\n%s\n\n", regionName)
	b.WriteString("**Estrutura JSON de Saída Obrigatória:**\n")
	fmt.Fprintf(&b, analysisOutputSchema, regionName)
	return b.String()
}

func buildPlanPrompt(in PlanInput, analysisJSON string) string {
	monthName := monthNameForKey(in.MonthKey)

	var b strings.Builder
	fmt.Fprintf(&b, "**Informações da Empresa:**\n%q\n", in.Description)
	fmt.Fprintf(&b, "**Estado de Atuação:** %s\n", in.RegionName)
	fmt.Fprintf(&b, "**Mês do Planejamento:** %s\n", monthName)
	b.WriteString("**Análise de Mercado (Contexto Estratégico):**\n```json\n")
	b.WriteString(analysisJSON)
	b.WriteString("\n```\n")
	b.WriteString("**Datas Comemorativas Relevantes:**\n")
	b.WriteString(holidayLines(in.Holidays))
	b.WriteString("\n\n**Estrutura JSON de Saída Obrigatória:**\n")
	fmt.Fprintf(&b, planOutputSchema, monthName, in.RegionName)
	b.WriteString("\n\n")
	b.WriteString(planRules)
	return b.String()
}

// holidayLines renders one "- name" line per holiday, or noHolidaysLine.
func holidayLines(holidays []holiday.Holiday) string {
	if len(holidays) == 0 {
		return noHolidaysLine
	}
	lines := make([]string, len(holidays))
	for i, h := range holidays {
		lines[i] = "- " + h.Name
	}
	return strings.Join(lines, "\n")
}

func buildIdeasPrompt(description string, h holiday.Holiday) string {
	return fmt.Sprintf(ideasPromptTemplate, description, h.Name, h.Date)
}

func monthNameForKey(monthKey string) string {
	_, number, _ := strings.Cut(monthKey, "-")
	return domain.CoalesceStr(domain.MonthName(number), monthKey)
}
