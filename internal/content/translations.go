package content

// Translation holds the language-specific base content. Variant tables
// override parts of it per visitor type; anything a variant leaves empty
// falls back to these strings.
type Translation struct {
	Home       homeStrings
	About      aboutStrings
	Skills     skillsStrings
	Projects   projectsStrings
	Experience experienceStrings
	Contact    contactStrings
	SEO        seoStrings
}

type homeStrings struct {
	Greeting string
	Tagline  string
	Intro    string
	ViewWork string
}

type aboutStrings struct {
	Title      string
	Summary    string
	Highlights []string
}

type skillsStrings struct {
	Title      string
	FocusAreas []string
}

type projectsStrings struct {
	Title       string
	Description string
	Items       []string
}

type experienceStrings struct {
	Title string
}

type contactStrings struct {
	Title   string
	Message string
	CTA     string
}

type seoStrings struct {
	Title       string
	Description string
	Keywords    []string
}

const fallbackLanguage = "en"

// baseTranslation returns the base content for lang, falling back to
// English for unknown languages.
func baseTranslation(lang string) Translation {
	if t, ok := translations[lang]; ok {
		return t
	}
	return translations[fallbackLanguage]
}

var translations = map[string]Translation{
	"en": {
		Home: homeStrings{
			Greeting: "Hi, I'm {{name}}",
			Tagline:  "Full-Stack Developer",
			Intro:    "I build reliable web applications with {{years}}+ years of hands-on experience across the stack.",
			ViewWork: "View My Work",
		},
		About: aboutStrings{
			Title:   "About Me",
			Summary: "Full-stack developer with {{years}}+ years of experience designing, building, and shipping web applications end to end.",
			Highlights: []string{
				"{{years}}+ years of professional experience",
				"{{projects_count}} production projects delivered",
				"Strong focus on code quality and maintainability",
			},
		},
		Skills: skillsStrings{
			Title:      "Skills & Technologies",
			FocusAreas: []string{"Frontend Development", "Backend Development", "DevOps & Tooling"},
		},
		Projects: projectsStrings{
			Title:       "Projects",
			Description: "A selection of things I have built, from product features to internal tooling.",
			Items: []string{
				"Adaptive Portfolio Platform",
				"Realtime Analytics Dashboard",
				"E-Commerce Storefront",
				"Team Knowledge Base",
				"CI Pipeline Toolkit",
				"Multilingual CMS",
			},
		},
		Experience: experienceStrings{Title: "Experience"},
		Contact: contactStrings{
			Title:   "Get In Touch",
			Message: "Have a question or want to work together? Drop me a line.",
			CTA:     "Send Message",
		},
		SEO: seoStrings{
			Title:       "{{name}} | Full-Stack Developer",
			Description: "Portfolio of {{name}}, a full-stack developer with {{years}}+ years of experience building web applications.",
			Keywords:    []string{"portfolio", "full-stack developer", "web development", "software engineer"},
		},
	},
	"de": {
		Home: homeStrings{
			Greeting: "Hallo, ich bin {{name}}",
			Tagline:  "Full-Stack-Entwickler",
			Intro:    "Ich entwickle zuverlässige Webanwendungen mit über {{years}} Jahren praktischer Erfahrung im gesamten Stack.",
			ViewWork: "Meine Arbeit ansehen",
		},
		About: aboutStrings{
			Title:   "Über mich",
			Summary: "Full-Stack-Entwickler mit über {{years}} Jahren Erfahrung in Konzeption, Entwicklung und Auslieferung von Webanwendungen.",
			Highlights: []string{
				"Über {{years}} Jahre Berufserfahrung",
				"{{projects_count}} produktive Projekte ausgeliefert",
				"Starker Fokus auf Codequalität und Wartbarkeit",
			},
		},
		Skills: skillsStrings{
			Title:      "Fähigkeiten & Technologien",
			FocusAreas: []string{"Frontend-Entwicklung", "Backend-Entwicklung", "DevOps & Tooling"},
		},
		Projects: projectsStrings{
			Title:       "Projekte",
			Description: "Eine Auswahl meiner Arbeiten, von Produktfunktionen bis zu internen Werkzeugen.",
			Items: []string{
				"Adaptive Portfolio-Plattform",
				"Echtzeit-Analyse-Dashboard",
				"E-Commerce-Storefront",
				"Team-Wissensdatenbank",
				"CI-Pipeline-Toolkit",
				"Mehrsprachiges CMS",
			},
		},
		Experience: experienceStrings{Title: "Erfahrung"},
		Contact: contactStrings{
			Title:   "Kontakt",
			Message: "Haben Sie eine Frage oder möchten Sie zusammenarbeiten? Schreiben Sie mir.",
			CTA:     "Nachricht senden",
		},
		SEO: seoStrings{
			Title:       "{{name}} | Full-Stack-Entwickler",
			Description: "Portfolio von {{name}}, Full-Stack-Entwickler mit über {{years}} Jahren Erfahrung in der Webentwicklung.",
			Keywords:    []string{"Portfolio", "Full-Stack-Entwickler", "Webentwicklung", "Softwareentwickler"},
		},
	},
	"fr": {
		Home: homeStrings{
			Greeting: "Bonjour, je suis {{name}}",
			Tagline:  "Développeur Full-Stack",
			Intro:    "Je conçois des applications web fiables avec plus de {{years}} ans d'expérience sur l'ensemble de la stack.",
			ViewWork: "Voir mes réalisations",
		},
		About: aboutStrings{
			Title:   "À propos",
			Summary: "Développeur full-stack avec plus de {{years}} ans d'expérience dans la conception et la livraison d'applications web.",
			Highlights: []string{
				"Plus de {{years}} ans d'expérience professionnelle",
				"{{projects_count}} projets livrés en production",
				"Attention particulière à la qualité et à la maintenabilité du code",
			},
		},
		Skills: skillsStrings{
			Title:      "Compétences & Technologies",
			FocusAreas: []string{"Développement Frontend", "Développement Backend", "DevOps & Outillage"},
		},
		Projects: projectsStrings{
			Title:       "Projets",
			Description: "Une sélection de mes réalisations, des fonctionnalités produit aux outils internes.",
			Items: []string{
				"Plateforme de portfolio adaptative",
				"Tableau de bord analytique temps réel",
				"Boutique e-commerce",
				"Base de connaissances d'équipe",
				"Boîte à outils CI",
				"CMS multilingue",
			},
		},
		Experience: experienceStrings{Title: "Expérience"},
		Contact: contactStrings{
			Title:   "Contact",
			Message: "Une question ou envie de collaborer ? Écrivez-moi.",
			CTA:     "Envoyer un message",
		},
		SEO: seoStrings{
			Title:       "{{name}} | Développeur Full-Stack",
			Description: "Portfolio de {{name}}, développeur full-stack avec plus de {{years}} ans d'expérience en développement web.",
			Keywords:    []string{"portfolio", "développeur full-stack", "développement web", "ingénieur logiciel"},
		},
	},
	"ar": {
		Home: homeStrings{
			Greeting: "مرحباً، أنا {{name}}",
			Tagline:  "مطوّر ويب متكامل",
			Intro:    "أبني تطبيقات ويب موثوقة بخبرة عملية تزيد عن {{years}} سنوات في جميع طبقات التطوير.",
			ViewWork: "شاهد أعمالي",
		},
		About: aboutStrings{
			Title:   "نبذة عني",
			Summary: "مطوّر ويب متكامل بخبرة تزيد عن {{years}} سنوات في تصميم وبناء وإطلاق تطبيقات الويب.",
			Highlights: []string{
				"خبرة مهنية تزيد عن {{years}} سنوات",
				"{{projects_count}} مشروعاً منجزاً في بيئة الإنتاج",
				"تركيز قوي على جودة الكود وقابلية الصيانة",
			},
		},
		Skills: skillsStrings{
			Title:      "المهارات والتقنيات",
			FocusAreas: []string{"تطوير الواجهات الأمامية", "تطوير الأنظمة الخلفية", "DevOps والأدوات"},
		},
		Projects: projectsStrings{
			Title:       "المشاريع",
			Description: "مجموعة مختارة من أعمالي، من ميزات المنتجات إلى الأدوات الداخلية.",
			Items: []string{
				"منصة ملف أعمال تكيفية",
				"لوحة تحليلات فورية",
				"متجر إلكتروني",
				"قاعدة معرفة للفريق",
				"أدوات خطوط CI",
				"نظام إدارة محتوى متعدد اللغات",
			},
		},
		Experience: experienceStrings{Title: "الخبرة"},
		Contact: contactStrings{
			Title:   "تواصل معي",
			Message: "هل لديك سؤال أو ترغب في التعاون؟ راسلني.",
			CTA:     "إرسال رسالة",
		},
		SEO: seoStrings{
			Title:       "{{name}} | مطوّر ويب متكامل",
			Description: "ملف أعمال {{name}}، مطوّر ويب متكامل بخبرة تزيد عن {{years}} سنوات في بناء تطبيقات الويب.",
			Keywords:    []string{"ملف أعمال", "مطوّر ويب متكامل", "تطوير الويب", "مهندس برمجيات"},
		},
	},
}
