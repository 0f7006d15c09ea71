package cms

import "html/template"

// ServicePackage is a fixed-price offering listed on the services page.
type ServicePackage struct {
	Slug          string
	Name          string
	Deliverables  []string
	DurationWeeks int
	PriceMinor    int64
	Currency      string
}

// Link is an outbound reference attached to catalog records.
type Link struct {
	Label string
	Href  string
}

// TeamMember is a person shown on the about page.
type TeamMember struct {
	Name  string
	Role  string
	Photo string
	Bio   template.HTML
	Links []Link
}

// Feature is a short titled card.
type Feature struct {
	Title string
	Body  template.HTML
}

// RoadmapStage is one step of the data management roadmap.
type RoadmapStage struct {
	Title string
	Items []string
}

// PracticeSection is a block of the data management practice page. Image is
// optional; Cards and Stages render below the body when present.
type PracticeSection struct {
	ID       string
	Title    string
	Body     template.HTML
	Image    string
	ImageAlt string
	Cards    []Feature
	Stages   []RoadmapStage
}

// Practice is the content of the data management practice page.
type Practice struct {
	Intro    template.HTML
	Sections []PracticeSection
}

const damaURL = "https://www.damauruguay.org/quienes-somos/"

var services = map[string][]ServicePackage{
	"es": {
		{
			Slug: "sprint-metadatos-bi",
			Name: "Sprint Metadatos & BI",
			Deliverables: []string{
				"Inventario de datos y mapa de metadatos",
				"3 KPIs críticos en dashboard",
				"Backlog priorizado (impacto/esfuerzo)",
				"Informe ejecutivo",
			},
			DurationWeeks: 2, PriceMinor: 190000, Currency: "EUR",
		},
		{
			Slug: "rag-kickstart",
			Name: "RAG Kickstart",
			Deliverables: []string{
				"Asistente IA con FAQs/políticas del cliente",
				"Indexación y búsqueda semántica",
				"Trazas y evaluación básica",
				"Guía de operación",
			},
			DurationWeeks: 2, PriceMinor: 240000, Currency: "EUR",
		},
		{
			Slug: "clasificacion-sentimiento",
			Name: "Clasificación & Sentimiento",
			Deliverables: []string{
				"Modelo base (clases/sentimiento)",
				"Pipeline reproducible",
				"Informe de performance",
				"Recomendaciones de mejora",
			},
			DurationWeeks: 1, PriceMinor: 120000, Currency: "EUR",
		},
	},
	"en": {
		{
			Slug: "sprint-metadatos-bi",
			Name: "Metadata & BI Sprint",
			Deliverables: []string{
				"Data inventory and metadata map",
				"3 critical KPIs on a dashboard",
				"Prioritised backlog (impact/effort)",
				"Executive report",
			},
			DurationWeeks: 2, PriceMinor: 190000, Currency: "EUR",
		},
		{
			Slug: "rag-kickstart",
			Name: "RAG Kickstart",
			Deliverables: []string{
				"AI assistant over the client's FAQs/policies",
				"Indexing and semantic search",
				"Traces and basic evaluation",
				"Operations guide",
			},
			DurationWeeks: 2, PriceMinor: 240000, Currency: "EUR",
		},
		{
			Slug: "clasificacion-sentimiento",
			Name: "Classification & Sentiment",
			Deliverables: []string{
				"Baseline model (classes/sentiment)",
				"Reproducible pipeline",
				"Performance report",
				"Improvement recommendations",
			},
			DurationWeeks: 1, PriceMinor: 120000, Currency: "EUR",
		},
	},
}

var team = map[string][]TeamMember{
	"es": {
		{
			Name:  "Roberto Villar",
			Role:  "CEO & Lead Data Consultant",
			Photo: "/img/roberto.jpeg",
			Bio: `Especialista en gobernanza de datos, BI e inteligencia artificial aplicada.
Miembro activo de <a href="` + damaURL + `" target="_blank" rel="noopener noreferrer">DAMA Uruguay</a>, capítulo local de la asociación internacional de gestión de datos (DAMA International).`,
			Links: []Link{{Label: "DAMA Uruguay", Href: damaURL}},
		},
		{
			Name:  "Joana Aldorasi",
			Role:  "Subdirectora & Project Coordinator",
			Photo: "/img/joana.jpeg",
			Bio:   "Enfocada en la gestión de proyectos y la coordinación operativa de soluciones tecnológicas.",
		},
	},
	"en": {
		{
			Name:  "Roberto Villar",
			Role:  "CEO & Lead Data Consultant",
			Photo: "/img/roberto.jpeg",
			Bio: `Specialist in data governance, BI and applied artificial intelligence.
Active member of <a href="` + damaURL + `" target="_blank" rel="noopener noreferrer">DAMA Uruguay</a>, the local chapter of the international data management association (DAMA International).`,
			Links: []Link{{Label: "DAMA Uruguay", Href: damaURL}},
		},
		{
			Name:  "Joana Aldorasi",
			Role:  "Deputy Director & Project Coordinator",
			Photo: "/img/joana.jpeg",
			Bio:   "Focused on project management and the operational coordination of technology solutions.",
		},
	},
}

var homeFeatures = map[string][]Feature{
	"es": {
		{Title: "Metadatos & Gobierno", Body: "Inventario, taxonomías y calidad de datos con enfoque DMBOK y OpenMetadata."},
		{Title: "BI Exprés", Body: "KPIs críticos y dashboard operativo en semanas, con backlog de mejoras."},
		{Title: "Asistentes IA / RAG", Body: "Respuestas confiables basadas en tus propios documentos y políticas."},
	},
	"en": {
		{Title: "Metadata & Governance", Body: "Inventory, taxonomies and data quality with a DMBOK and OpenMetadata approach."},
		{Title: "Express BI", Body: "Critical KPIs and an operational dashboard in weeks, with an improvement backlog."},
		{Title: "AI Assistants / RAG", Body: "Reliable answers grounded in your own documents and policies."},
	},
}

var roadmap = map[string][]RoadmapStage{
	"es": {
		{Title: "1. Datos Maestros", Items: []string{"Inventario y definiciones", "Propietarios y políticas"}},
		{Title: "2. OpenMetadata", Items: []string{"Catálogo y dominios", "Conectores a fuentes"}},
		{Title: "3. Calidad & Linaje", Items: []string{"Pruebas y alertas", "Impacto de cambios"}},
		{Title: "4. Analítica & IA", Items: []string{"Dashboards confiables", "RAG / modelos con trazas"}},
	},
	"en": {
		{Title: "1. Master Data", Items: []string{"Inventory and definitions", "Owners and policies"}},
		{Title: "2. OpenMetadata", Items: []string{"Catalogue and domains", "Source connectors"}},
		{Title: "3. Quality & Lineage", Items: []string{"Tests and alerts", "Change impact"}},
		{Title: "4. Analytics & AI", Items: []string{"Trustworthy dashboards", "RAG / models with traces"}},
	},
}

var practice = map[string]Practice{
	"es": {
		Intro: `La mayoría de las organizaciones se frena por intentar abarcar todo al inicio. La forma correcta es
<strong>empezar simple</strong> y con foco: <strong>metadatos</strong> + definición de
<strong>datos maestros</strong> y <strong>transaccionales</strong>, apoyados por una herramienta
abierta y madura como <strong>OpenMetadata</strong>. Desde ahí habilitamos calidad, linaje y
analítica confiable.`,
		Sections: []PracticeSection{
			{
				ID:       "arquitectura",
				Title:    "Arquitectura de referencia",
				Body:     "Un modelo por capas que conecta fuentes, metadatos y gobierno con los consumidores de datos (BI, IA, APIs). Simple de entender, fácil de escalar.",
				Image:    "/img/arquitectura-gestion-datos.png",
				ImageAlt: "Arquitectura de Gestión de Datos por capas con OpenMetadata",
			},
			{
				ID:    "definiciones",
				Title: "Dos definiciones que ordenan todo",
				Cards: []Feature{
					{Title: "Datos Maestros", Body: "Entidades estables del negocio (p. ej., <em>Persona, Trámite, Producto</em>). Se gobiernan con <strong>metadatos</strong>, responsables y reglas claras. Son el punto de partida."},
					{Title: "Datos Transaccionales", Body: "Registros de eventos/operaciones (p. ej., <em>Solicitudes, Pagos, Inscripciones</em>). Se conectan a maestros y alimentan analítica y tableros."},
				},
			},
			{
				ID:       "linaje",
				Title:    "Linaje de datos (de dónde viene cada dato)",
				Body:     "OpenMetadata traza automáticamente el recorrido de los datos entre orígenes, procesos y visualizaciones. Esto habilita auditoría, impacto de cambios y confianza.",
				Image:    "/img/linaje-de-datos.png",
				ImageAlt: "Diagrama de linaje de datos con OpenMetadata",
			},
			{
				ID:       "calidad",
				Title:    "Calidad de datos automatizada",
				Body:     "Definimos pruebas sobre columnas y tablas (unicidad, nulos, dominios válidos, integridad) y monitoreamos resultados con alertas. La calidad deja de ser algo manual.",
				Image:    "/img/calidad-de-datos.png",
				ImageAlt: "Panel de calidad de datos: unicidad, nulos, integridad y métricas",
			},
			{
				ID:       "roadmap",
				Title:    "Roadmap en 4 etapas (2–8 semanas)",
				Image:    "/img/roadmap-4-etapas.png",
				ImageAlt: "Roadmap de implementación en cuatro etapas",
				Stages:   roadmap["es"],
			},
			{
				ID:       "resultados",
				Title:    "Resultados visibles y medibles",
				Body:     "Inventario, dominios, linaje y calidad en un tablero ejecutivo. Priorizamos por impacto y esfuerzo para construir una hoja de ruta clara y realista.",
				Image:    "/img/cuadro-mando-metadatos.png",
				ImageAlt: "Cuadro de mando de metadatos y calidad",
			},
		},
	},
	"en": {
		Intro: `Most organisations stall by trying to cover everything at the start. The right way is to
<strong>start simple</strong> and focused: <strong>metadata</strong> + defining
<strong>master</strong> and <strong>transactional data</strong>, backed by an open, mature tool
such as <strong>OpenMetadata</strong>. From there we enable quality, lineage and trustworthy
analytics.`,
		Sections: []PracticeSection{
			{
				ID:       "arquitectura",
				Title:    "Reference architecture",
				Body:     "A layered model that connects sources, metadata and governance with data consumers (BI, AI, APIs). Easy to understand, easy to scale.",
				Image:    "/img/arquitectura-gestion-datos.png",
				ImageAlt: "Layered data management architecture with OpenMetadata",
			},
			{
				ID:    "definiciones",
				Title: "Two definitions that bring order",
				Cards: []Feature{
					{Title: "Master Data", Body: "Stable business entities (e.g. <em>Person, Procedure, Product</em>). Governed with <strong>metadata</strong>, owners and clear rules. They are the starting point."},
					{Title: "Transactional Data", Body: "Records of events/operations (e.g. <em>Requests, Payments, Enrolments</em>). They link to master data and feed analytics and dashboards."},
				},
			},
			{
				ID:       "linaje",
				Title:    "Data lineage (where each piece of data comes from)",
				Body:     "OpenMetadata automatically traces how data flows between sources, processes and visualisations. This enables auditing, change impact analysis and trust.",
				Image:    "/img/linaje-de-datos.png",
				ImageAlt: "Data lineage diagram with OpenMetadata",
			},
			{
				ID:       "calidad",
				Title:    "Automated data quality",
				Body:     "We define tests on columns and tables (uniqueness, nulls, valid domains, integrity) and monitor results with alerts. Quality stops being a manual chore.",
				Image:    "/img/calidad-de-datos.png",
				ImageAlt: "Data quality panel: uniqueness, nulls, integrity and metrics",
			},
			{
				ID:       "roadmap",
				Title:    "A 4-stage roadmap (2–8 weeks)",
				Image:    "/img/roadmap-4-etapas.png",
				ImageAlt: "Four-stage implementation roadmap",
				Stages:   roadmap["en"],
			},
			{
				ID:       "resultados",
				Title:    "Visible, measurable results",
				Body:     "Inventory, domains, lineage and quality on an executive dashboard. We prioritise by impact and effort to build a clear, realistic roadmap.",
				Image:    "/img/cuadro-mando-metadatos.png",
				ImageAlt: "Metadata and quality dashboard",
			},
		},
	},
}

// Services returns the service packages for lang, in display order.
func Services(lang string) []ServicePackage {
	src := services[catalogLang(lang)]
	out := make([]ServicePackage, len(src))
	for i, p := range src {
		p.Deliverables = append([]string(nil), p.Deliverables...)
		out[i] = p
	}
	return out
}

// Team returns the team members for lang.
func Team(lang string) []TeamMember {
	src := team[catalogLang(lang)]
	out := make([]TeamMember, len(src))
	for i, m := range src {
		m.Links = append([]Link(nil), m.Links...)
		out[i] = m
	}
	return out
}

// HomeFeatures returns the home page feature cards for lang.
func HomeFeatures(lang string) []Feature {
	return append([]Feature(nil), homeFeatures[catalogLang(lang)]...)
}

// PracticePage returns the data management practice content for lang.
func PracticePage(lang string) Practice {
	src := practice[catalogLang(lang)]
	out := Practice{Intro: src.Intro, Sections: make([]PracticeSection, len(src.Sections))}
	for i, s := range src.Sections {
		s.Cards = append([]Feature(nil), s.Cards...)
		s.Stages = cloneStages(s.Stages)
		out.Sections[i] = s
	}
	return out
}

func cloneStages(in []RoadmapStage) []RoadmapStage {
	if in == nil {
		return nil
	}
	out := make([]RoadmapStage, len(in))
	for i, s := range in {
		s.Items = append([]string(nil), s.Items...)
		out[i] = s
	}
	return out
}

func catalogLang(lang string) string {
	if _, ok := services[normalizeLang(lang)]; ok {
		return normalizeLang(lang)
	}
	return defaultLang
}
