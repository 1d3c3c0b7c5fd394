package landing

import (
	"github.com/Adaptare-Software/workshop-registration/pricing"
	"github.com/Adaptare-Software/workshop-registration/slices"
)

type Hero struct {
	Badge    string `json:"badge"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Dates    string `json:"dates"`
	Location string `json:"location"`
	CTA      CTA    `json:"cta"`
}

// CTA opens the registration wizard preselected on Category.
type CTA struct {
	Label    string           `json:"label"`
	Category pricing.Category `json:"category"`
}

type PainPoint struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Module struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Topics   []string `json:"topics"`
}

type Kids struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Highlights  []PainPoint `json:"highlights"`
	Dates       string      `json:"dates"`
	Included    string      `json:"included"`
	MinAge      int         `json:"minAge"`
	MaxAge      int         `json:"maxAge"`
	Seats       int         `json:"seats"`
}

type Mentor struct {
	Name string   `json:"name"`
	Role string   `json:"role"`
	Bio  string   `json:"bio"`
	Tags []string `json:"tags"`
}

type PricingCard struct {
	Category    pricing.Category `json:"category"`
	Eyebrow     string           `json:"eyebrow"`
	Title       string           `json:"title"`
	Dates       string           `json:"dates"`
	Price       float64          `json:"price"`
	PixPrice    float64          `json:"pixPrice"`
	Unit        string           `json:"unit"`
	Highlight   string           `json:"highlight"`
	Savings     string           `json:"savings"`
	Features    []string         `json:"features"`
	PixDiscount string           `json:"pixDiscount"`
	CTA         CTA              `json:"cta"`
}

type Content struct {
	Hero         Hero          `json:"hero"`
	PainTitle    string        `json:"painTitle"`
	PainPoints   []PainPoint   `json:"painPoints"`
	Curriculum   []Module      `json:"curriculum"`
	Bonus        Module        `json:"bonus"`
	FamilyBridge []string      `json:"familyBridge"`
	Kids         Kids          `json:"kids"`
	Mentor       Mentor        `json:"mentor"`
	Pricing      []PricingCard `json:"pricing"`
}

const pixDiscountLabel = "5% de desconto no PIX"

// Default is the workshop landing page. Card prices come from pricing so the
// page can never disagree with what checkout charges.
func Default() Content {
	return Content{
		Hero: Hero{
			Badge:    "Vagas Limitadas • Joaçaba",
			Title:    "Pare de usar IA somente como um buscador e aplique ela em seu negócio",
			Subtitle: "Workshop prático de 8 horas para transformar tecnologia em dinheiro no bolso. Saia com seu Consultor Digital pronto e pare de perder tempo com tarefas repetitivas.",
			Dates:    "22/01 e 29/01 (Noite)",
			Location: "Joaçaba, SC",
			CTA:      CTA{Label: "Quero minha vaga agora", Category: pricing.Adult},
		},
		PainTitle: `A IA ainda é um "Bicho de Sete Cabeças"?`,
		PainPoints: []PainPoint{
			{
				Title:       "Curiosidade Paralisante",
				Description: "Você sabe que precisa usar, mas fica perdido em tutoriais técnicos que não falam a língua do seu negócio.",
			},
			{
				Title:       "Medo de parecer Robô",
				Description: "Seus clientes não querem falar com máquinas burras. Ensinamos a IA a ter a SUA personalidade.",
			},
		},
		Curriculum: []Module{
			{Title: "A Arte de Conversar", Subtitle: "Como dar ordens que geram lucro.", Topics: []string{"As Ferramentas Certas (Comparativo)", "Estrutura de Comandos (Prompts)", "Eliminando respostas ruins"}},
			{Title: "Seu Consultor Digital", Subtitle: `O "Sócio" que não dorme (NotebookLM).`, Topics: []string{"Colocando sua empresa na IA", "Analisando PDFs e Contratos", "Criando Estratégias de Venda"}},
			{Title: "Assistentes 24h", Subtitle: "Funcionários digitais para rotinas.", Topics: []string{"Criando Assistentes Especialistas", "Automação de WhatsApp/Agenda", "Triagem de Clientes no Automático"}},
			{Title: "Marketing Profissional", Subtitle: "Design de ponta sem Designer.", Topics: []string{"Dominando o Grok (xAI)", "Imagens que Vendem", "Anúncios Prontos em minutos"}},
			{Title: "Liderança com IA", Subtitle: "Você no comando, não a máquina.", Topics: []string{"Supervisão (Human-in-the-loop)", "Segurança dos seus Dados", "Plano de Ação de 30 dias"}},
		},
		Bonus: Module{
			Title:    "Kit de Implementação",
			Subtitle: "Não comece do zero.",
			Topics:   []string{"Ferramentas já configuradas", "Biblioteca de Comandos Prontos", "Suporte no WhatsApp (7 dias)"},
		},
		FamilyBridge: []string{
			"Você domina IA para negócios (noite)",
			"Ele domina IA para estudos (tarde)",
			"Vocês falam a mesma língua",
		},
		Kids: Kids{
			Title:       "O Fim do Dever de Casa Chato",
			Description: "Enquanto você aprende a lucrar mais, seu filho descobre como transformar o estudo em uma aventura épica.",
			Highlights: []PainPoint{
				{Title: "Cartas de Prompt", Description: `Aprenda a "programar" jogando cartas.`},
				{Title: "HQ de Sobrevivência", Description: "Criando quadrinhos profissionais."},
				{Title: "Estudo Gamificado", Description: "Nunca mais brigue para ele estudar."},
				{Title: "Ambiente Seguro", Description: "Foco total em educação."},
			},
			Dates:    "27/01 e 28/01 (Tarde)",
			Included: "Lanche para os alunos",
			MinAge:   10,
			MaxAge:   13,
			Seats:    10,
		},
		Mentor: Mentor{
			Name: "Maykol Ouriques",
			Role: "CEO da Adaptare & Estrategista",
			Bio:  `Especialista em transformar tecnologia complexa em lucro real para PMEs. Sua missão é ser o "braço direito" do empresário que quer automatizar, tirando o tecnês da frente e colocando dinheiro no bolso.`,
			Tags: []string{"+10 Anos de XP", "Foco em Resultado"},
		},
		Pricing: pricingCards(),
	}
}

func pricingCards() []PricingCard {
	cards := []PricingCard{
		{
			Category: pricing.Kids,
			Eyebrow:  "10 a 13 anos",
			Title:    "Mestres da IA Kids",
			Dates:    "27/01 e 28/01 (Tarde)",
			Unit:     "/pessoa",
			Features: []string{"Missão Ilha Nublar", "Material Gamificado", "Lanche Incluso"},
		},
		{
			Category:  pricing.Adult,
			Eyebrow:   "Empreendedores",
			Title:     "Workshop Adulto",
			Dates:     "22/01 e 29/01 (Noite)",
			Unit:      "/pessoa",
			Highlight: "Recomendado",
			Features:  []string{"8 Horas Práticas", "Consultor Digital Pronto", "Assistentes 24h Configurados", "Suporte WhatsApp (7 Dias)"},
		},
		{
			Category: pricing.Combo,
			Eyebrow:  "Pais + Filhos",
			Title:    "Combo Família",
			Dates:    "Adulto + Kids",
			Unit:     "/total",
			Features: []string{"1 Ingresso Adulto", "1 Ingresso Kids (Sai por R$ 300)", "Suporte Completo"},
		},
	}

	return slices.Map(cards, func(c PricingCard) PricingCard {
		c.Price = pricing.BasePrice(c.Category)
		c.PixPrice = pricing.Calculate(c.Category, pricing.Pix, 1).Final
		c.PixDiscount = pixDiscountLabel
		c.CTA = CTA{Label: "Garantir vaga", Category: c.Category}
		if c.Category == pricing.Combo {
			c.Savings = "Economia de " + pricing.FormatBRL(comboSavings())
		}
		return c
	})
}

// comboSavings is what a family saves buying the combo instead of one adult
// and one kids ticket.
func comboSavings() float64 {
	return pricing.BasePrice(pricing.Adult) + pricing.BasePrice(pricing.Kids) - pricing.BasePrice(pricing.Combo)
}
