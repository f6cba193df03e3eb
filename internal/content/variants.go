package content

import "github.com/kalambet/persona/internal/profile"

// Variant tables keyed by visitor type. A section without an entry for
// the resolved type falls back to the TypeUnknown entry; sections with no
// TypeUnknown entry (about, skills, projects, meta) fall back to the base
// translation instead. Empty fields inside a variant fall back field by
// field.

type homeVariant struct {
	Greeting string
	Tagline  string
	Intro    string
	CTAText  string
}

type aboutVariant struct {
	Title         string
	Summary       string
	KeyHighlights []string
}

type skillsVariant struct {
	Title         string
	FocusAreas    []string
	PriorityOrder []string
}

type projectsVariant struct {
	Title            string
	Description      string
	FeaturedProjects []string
}

type metaVariant struct {
	Title       string
	Description string
	Keywords    []string
}

// variantFor resolves a table entry for t, falling back to the unknown
// entry when the type has no dedicated variant.
func variantFor[V any](table map[profile.VisitorType]V, t profile.VisitorType) (V, bool) {
	if v, ok := table[t]; ok {
		return v, true
	}
	v, ok := table[profile.TypeUnknown]
	return v, ok
}

var homeVariants = map[profile.VisitorType]homeVariant{
	profile.TypeHeadHunter: {
		Greeting: "Professional Full-Stack Developer",
		Tagline:  "Building scalable solutions with proven impact",
		Intro:    "Results-driven developer with {{years}}+ years of experience delivering enterprise-grade applications. Proven track record of leading teams and driving technical innovation.",
		CTAText:  "View Professional Profile",
	},
	profile.TypeJobSeeker: {
		Greeting: "Hello, I'm looking for my next opportunity",
		Tagline:  "Passionate developer ready to contribute",
		Intro:    "Full-stack developer eager to bring creativity and technical expertise to your team. I thrive in collaborative environments and love solving complex challenges.",
		CTAText:  "Let's Connect",
	},
	profile.TypePeerDeveloper: {
		Greeting: "Hey fellow developer! 👋",
		Tagline:  "Building cool stuff with modern tech",
		Intro:    "I'm a developer who loves experimenting with new technologies and contributing to open source. Always up for discussing architecture, best practices, or the latest frameworks.",
		CTAText:  "Check Out My Code",
	},
	profile.TypeClient: {
		Greeting: "Your Technical Partner",
		Tagline:  "Transforming ideas into digital solutions",
		Intro:    "I help businesses leverage technology to achieve their goals. From concept to deployment, I deliver solutions that drive growth and efficiency.",
		CTAText:  "Start Your Project",
	},
	profile.TypeUnknown: {
		Greeting: "Hello, I am {{name}}",
		Tagline:  "Full-Stack Developer & Problem Solver",
		Intro:    "I create digital experiences that matter. With expertise in modern web technologies, I build applications that are both powerful and user-friendly.",
		CTAText:  "Explore My Work",
	},
}

var aboutVariants = map[profile.VisitorType]aboutVariant{
	profile.TypeHeadHunter: {
		Title:   "Professional Background",
		Summary: "Senior Full-Stack Developer with expertise in React, Node.js, and cloud technologies. Led multiple successful projects from conception to deployment, with a focus on scalable architecture and team leadership. Proven ability to deliver results in fast-paced environments.",
		KeyHighlights: []string{
			"{{projects_count}}+ successful projects delivered",
			"Team leadership and mentoring experience",
			"Strong problem-solving and analytical skills",
			"Excellent communication and collaboration abilities",
			"Continuous learning and adaptation to new technologies",
		},
	},
	profile.TypeJobSeeker: {
		Title:   "About Me",
		Summary: "Passionate full-stack developer with a love for creating intuitive user experiences and robust backend systems. I'm always eager to learn new technologies and contribute to meaningful projects.",
		KeyHighlights: []string{
			"Quick learner with strong technical foundation",
			"Collaborative team player",
			"Detail-oriented with focus on quality",
			"Open to new challenges and opportunities",
			"Committed to professional growth",
		},
	},
	profile.TypePeerDeveloper: {
		Title:   "Developer Profile",
		Summary: "Full-stack developer passionate about clean code, modern architecture, and emerging technologies. I enjoy sharing knowledge, contributing to open source, and discussing technical challenges with fellow developers.",
		KeyHighlights: []string{
			"Modern web technologies enthusiast",
			"Open source contributor",
			"Clean code and best practices advocate",
			"Always exploring new tech and methodologies",
			"Active in developer communities",
		},
	},
	profile.TypeClient: {
		Title:   "Business Partnership",
		Summary: "Technical consultant and full-stack developer who understands business needs. I translate your vision into robust, scalable solutions that drive growth and improve efficiency.",
		KeyHighlights: []string{
			"Business-focused technical solutions",
			"End-to-end project management",
			"ROI-driven development approach",
			"Clear communication and transparency",
			"Long-term partnership mindset",
		},
	},
}

var skillsVariants = map[profile.VisitorType]skillsVariant{
	profile.TypeHeadHunter: {
		Title:         "Technical Expertise",
		FocusAreas:    []string{"Leadership", "Architecture", "Scalability", "Performance"},
		PriorityOrder: []string{"backend", "frontend", "devops", "databases", "tools", "mobile"},
	},
	profile.TypePeerDeveloper: {
		Title:         "Tech Stack",
		FocusAreas:    []string{"Modern Frameworks", "Best Practices", "Innovation", "Open Source"},
		PriorityOrder: []string{"frontend", "backend", "tools", "devops", "databases", "mobile"},
	},
	profile.TypeClient: {
		Title:         "Solution Capabilities",
		FocusAreas:    []string{"Business Impact", "User Experience", "Reliability", "Growth"},
		PriorityOrder: []string{"frontend", "backend", "databases", "devops", "tools", "mobile"},
	},
}

var projectsVariants = map[profile.VisitorType]projectsVariant{
	profile.TypeHeadHunter: {
		Title:            "Professional Projects",
		Description:      "Selection of enterprise-grade projects demonstrating technical leadership and business impact.",
		FeaturedProjects: []string{"most_complex", "team_leadership", "business_impact"},
	},
	profile.TypePeerDeveloper: {
		Title:            "Code & Projects",
		Description:      "Open source contributions and personal projects showcasing modern development practices.",
		FeaturedProjects: []string{"open_source", "innovative", "technical_challenge"},
	},
	profile.TypeClient: {
		Title:            "Success Stories",
		Description:      "Real-world solutions that delivered measurable business results for clients.",
		FeaturedProjects: []string{"business_impact", "client_success", "roi_focused"},
	},
}

var metaVariants = map[profile.VisitorType]metaVariant{
	profile.TypeHeadHunter: {
		Title:       "{{name}} - Senior Full-Stack Developer | Available for Hire",
		Description: "Experienced full-stack developer with proven track record in React, Node.js, and modern web technologies. Ready to join your team and drive technical innovation.",
		Keywords:    []string{"full-stack developer", "react developer", "node.js", "hiring", "available", "senior developer", "team lead"},
	},
	profile.TypeJobSeeker: {
		Title:       "{{name}} - Full-Stack Developer Seeking Opportunities",
		Description: "Passionate full-stack developer looking for new challenges. Expertise in modern web technologies with a focus on user experience and clean code.",
		Keywords:    []string{"developer job search", "full-stack developer", "career opportunity", "web developer", "react", "node.js"},
	},
	profile.TypePeerDeveloper: {
		Title:       "{{name}} - Developer & Tech Enthusiast",
		Description: "Full-stack developer passionate about modern web technologies, open source, and sharing knowledge with the developer community.",
		Keywords:    []string{"developer portfolio", "full-stack", "open source", "tech blog", "web development", "modern frameworks"},
	},
	profile.TypeClient: {
		Title:       "{{name}} - Technical Consultant & Full-Stack Developer",
		Description: "Transform your business ideas into powerful digital solutions. Expert full-stack development services with focus on ROI and growth.",
		Keywords:    []string{"web development services", "technical consultant", "full-stack developer", "business solutions", "digital transformation"},
	},
}

var contactMessages = map[profile.VisitorType]string{
	profile.TypeHeadHunter:    "I'm interested in discussing how I can contribute to your team. Let's talk about how my experience aligns with your needs.",
	profile.TypeJobSeeker:     "I'm actively seeking new opportunities and would love to hear about potential roles that match my skills.",
	profile.TypePeerDeveloper: "Always happy to connect with fellow developers! Whether it's about collaboration, code reviews, or just tech talk.",
	profile.TypeClient:        "Ready to bring your vision to life? Let's discuss your project requirements and how I can help achieve your goals.",
	profile.TypeUnknown:       "Feel free to reach out for any inquiries or potential collaborations.",
}

var contactCTAs = map[profile.VisitorType]string{
	profile.TypeHeadHunter:    "Schedule Interview",
	profile.TypeJobSeeker:     "Discuss Opportunities",
	profile.TypePeerDeveloper: "Let's Connect",
	profile.TypeClient:        "Start Project Discussion",
	profile.TypeUnknown:       "Get In Touch",
}

var dynamicCTAs = map[profile.VisitorType]CTA{
	profile.TypeHeadHunter:    {Text: "Download Resume", Action: "download-cv", Style: "primary"},
	profile.TypeJobSeeker:     {Text: "View Opportunities", Action: "contact", Style: "primary"},
	profile.TypePeerDeveloper: {Text: "Check GitHub", Action: "github", Style: "secondary"},
	profile.TypeClient:        {Text: "Start Project", Action: "contact", Style: "primary"},
	profile.TypeUnknown:       {Text: "Get In Touch", Action: "contact", Style: "primary"},
}

var sectionPriorities = map[profile.VisitorType][]string{
	profile.TypeHeadHunter:    {"about", "experience", "skills", "education", "certificates", "projects", "publications", "contact"},
	profile.TypeJobSeeker:     {"about", "skills", "projects", "experience", "education", "certificates", "contact", "publications"},
	profile.TypePeerDeveloper: {"about", "projects", "skills", "publications", "experience", "education", "contact", "certificates"},
	profile.TypeClient:        {"about", "projects", "experience", "skills", "contact", "education", "certificates", "publications"},
	profile.TypeUnknown:       {"about", "skills", "projects", "experience", "education", "publications", "certificates", "contact"},
}

var defaultSkillPriority = []string{"frontend", "backend", "databases", "devops", "tools", "mobile"}

var sourceKeywords = map[profile.Source][]string{
	profile.SourceLinkedIn: {"linkedin", "professional", "career", "hiring"},
	profile.SourceGitHub:   {"github", "open source", "code", "developer"},
	profile.SourceGoogle:   {"portfolio", "developer", "web development"},
	profile.SourceSocial:   {"social media", "networking"},
	profile.SourceDirect:   {"portfolio", "personal website"},
}

var industryKeywords = []string{"web development", "react", "node.js", "typescript", "full-stack"}

var hintTechKeywords = []string{"react", "typescript", "node", "python", "ai", "machine learning", "web development"}
