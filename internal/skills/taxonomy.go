// Package skills finds and categorizes candidate skills. The taxonomy below
// is the single table used both for searching text and for grouping found
// skills into technical proficiency buckets.
package skills

import (
	"regexp"
	"strings"

	"github.com/spigell/cv-analyzer/internal/model"
)

const (
	CategoryProgramming  = "programming_languages"
	CategoryWeb          = "web"
	CategoryDatabases    = "databases"
	CategoryTools        = "devops_tools"
	CategoryDataML       = "data_ml"
	CategoryMobile       = "mobile"
	CategoryNetworking   = "networking"
	CategoryEngineering  = "engineering"
	CategoryDesign       = "design"
	CategoryMarketing    = "marketing"
	CategoryProfessional = "soft_skills"
	CategoryOther        = "other"
)

// Category is one taxonomy bucket with canonical skill names.
type Category struct {
	Name   string
	Skills []string
}

// Taxonomy is ordered; a skill belongs to the first category listing it.
var Taxonomy = []Category{
	{Name: CategoryProgramming, Skills: []string{
		"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "C", "Go", "Rust",
		"Ruby", "PHP", "Swift", "Kotlin", "Scala", "R", "MATLAB", "Perl", "Dart",
		"Bash", "SQL", "Haskell", "Elixir", "Lua", "Objective-C", "Assembly", "VBA",
	}},
	{Name: CategoryWeb, Skills: []string{
		"HTML", "CSS", "React", "Angular", "Vue.js", "Node.js", "Express", "Django",
		"Flask", "FastAPI", "Spring Boot", "Laravel", "Symfony", "Ruby on Rails",
		"ASP.NET", ".NET", "Next.js", "jQuery", "Bootstrap", "Tailwind CSS", "Sass",
		"GraphQL", "REST API", "WordPress", "Webpack", "Redux",
	}},
	{Name: CategoryDatabases, Skills: []string{
		"MySQL", "PostgreSQL", "MongoDB", "Redis", "Oracle", "SQL Server", "SQLite",
		"Cassandra", "Elasticsearch", "Firebase", "DynamoDB", "MariaDB", "Neo4j",
	}},
	{Name: CategoryTools, Skills: []string{
		"Git", "GitHub", "GitLab", "Bitbucket", "Docker", "Kubernetes", "Jenkins",
		"GitHub Actions", "CI/CD", "Terraform", "Ansible", "AWS", "Azure", "GCP",
		"Linux", "Unix", "Nginx", "Jira", "Confluence", "Trello", "Slack", "Postman",
		"Maven", "Gradle", "Prometheus", "Grafana", "Microsoft Office", "Excel",
		"Word", "PowerPoint", "Outlook", "Google Workspace",
	}},
	{Name: CategoryDataML, Skills: []string{
		"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "Keras",
		"scikit-learn", "Pandas", "NumPy", "Matplotlib", "Tableau", "Power BI",
		"Spark", "Hadoop", "NLP", "Computer Vision", "Statistics", "Data Analysis",
		"Data Visualization", "Jupyter", "Airflow", "OpenCV", "Big Data", "Data Mining",
	}},
	{Name: CategoryMobile, Skills: []string{
		"Android", "iOS", "Flutter", "React Native", "Xamarin", "SwiftUI",
		"Jetpack Compose", "Ionic",
	}},
	{Name: CategoryNetworking, Skills: []string{
		"TCP/IP", "DNS", "DHCP", "VPN", "Cisco", "Routing", "Switching", "Firewall",
		"LAN", "WAN", "VLAN", "CCNA", "Network Security", "Cybersecurity", "Wireshark",
	}},
	{Name: CategoryEngineering, Skills: []string{
		"AutoCAD", "SolidWorks", "CATIA", "ANSYS", "Revit", "LabVIEW", "Simulink",
		"PLC", "Arduino", "Raspberry Pi", "CAD", "CAM", "FEA", "CFD", "Six Sigma",
		"Lean Manufacturing", "Quality Control", "Embedded Systems", "Circuit Design",
		"Thermodynamics", "HVAC",
	}},
	{Name: CategoryDesign, Skills: []string{
		"Figma", "Adobe XD", "Photoshop", "Illustrator", "InDesign", "Sketch",
		"After Effects", "Premiere Pro", "Canva", "InVision", "UI Design", "UX Design",
		"Prototyping", "Wireframing", "User Research", "Typography", "Branding",
		"Graphic Design", "Blender", "Adobe Creative Suite",
	}},
	{Name: CategoryMarketing, Skills: []string{
		"SEO", "SEM", "Google Analytics", "Google Ads", "Facebook Ads",
		"Content Marketing", "Social Media", "Email Marketing", "Digital Marketing",
		"Copywriting", "HubSpot", "Mailchimp", "Hootsuite", "SEMrush",
		"Market Research", "Marketing Strategy", "CRM", "Salesforce", "Pipedrive",
		"Zoho", "LinkedIn Sales Navigator", "Brand Management",
	}},
	{Name: CategoryProfessional, Skills: []string{
		"Communication", "Leadership", "Teamwork", "Problem Solving", "Time Management",
		"Critical Thinking", "Adaptability", "Creativity", "Negotiation",
		"Project Management", "Customer Service", "Public Speaking", "Collaboration",
		"Attention to Detail", "Lead Generation", "Business Development",
		"Account Management", "Cold Calling", "Customer Relationship", "Sales Strategy",
		"Pipeline Management", "B2B", "Forecasting", "Budgeting", "Agile", "Scrum",
	}},
}

// aliases maps alternative spellings to canonical names.
var aliases = map[string][]string{
	"Go":                 {"golang"},
	"JavaScript":         {"JS", "ecmascript"},
	"TypeScript":         {"TS"},
	"C#":                 {"csharp"},
	"C++":                {"cpp"},
	"Kubernetes":         {"k8s"},
	"PostgreSQL":         {"postgres", "psql"},
	"Node.js":            {"nodejs", "node js"},
	"Vue.js":             {"Vue", "vuejs"},
	"React":              {"reactjs", "react.js"},
	"Next.js":            {"nextjs"},
	"Angular":            {"angularjs"},
	"scikit-learn":       {"sklearn"},
	"REST API":           {"REST", "restful", "rest apis", "restful api"},
	"CI/CD":              {"ci cd", "cicd"},
	"AWS":                {"amazon web services"},
	"GCP":                {"google cloud", "google cloud platform"},
	"Microsoft Office":   {"ms office", "office 365", "microsoft 365"},
	"Excel":              {"ms excel", "microsoft excel"},
	"Word":               {"ms word", "microsoft word"},
	"PowerPoint":         {"ms powerpoint", "microsoft powerpoint"},
	"Machine Learning":   {"ML"},
	"Deep Learning":      {"DL"},
	"NLP":                {"natural language processing"},
	"Power BI":           {"powerbi"},
	"UI Design":          {"UI", "user interface design"},
	"UX Design":          {"UX", "user experience", "user experience design"},
	"Teamwork":           {"team work", "team player", "team spirit"},
	"Communication":      {"communication skills", "communicating"},
	"Problem Solving":    {"problem solver"},
	"Photoshop":          {"adobe photoshop"},
	"Illustrator":        {"adobe illustrator"},
	"InDesign":           {"adobe indesign"},
	"Premiere Pro":       {"adobe premiere"},
	"After Effects":      {"adobe after effects"},
	"Google Workspace":   {"g suite", "gsuite"},
	"Social Media":       {"social media marketing", "smm"},
	"SQL Server":         {"mssql", "ms sql", "microsoft sql server"},
	"Ruby on Rails":      {"Rails"},
	"Objective-C":        {"objc"},
	"Tailwind CSS":       {"tailwind"},
	"Data Visualization": {"data visualisation", "dataviz"},
	"Customer Service":   {"customer support"},
	"Project Management": {"project manager"},
}

// caseSensitive holds names and aliases that are also ordinary English
// words or letters and only count when written with their usual casing.
var caseSensitive = map[string]bool{
	"Go": true, "R": true, "C": true, "Swift": true, "Rust": true, "Ruby": true,
	"Dart": true, "Express": true, "Excel": true, "Word": true, "Outlook": true,
	"Slack": true, "Sketch": true, "Oracle": true, "Spark": true, "Routing": true,
	"Switching": true, "Firewall": true, "CAD": true, "CAM": true, "ML": true,
	"DL": true, "UI": true, "UX": true, "Agile": true, "Scrum": true, "Canva": true,
	"Lua": true, "Assembly": true, "Bootstrap": true, "Flask": true, "Ionic": true,
	"Blender": true, "Branding": true, "Statistics": true, "Forecasting": true,
	"Budgeting": true, "Creativity": true, "Leadership": true, "Collaboration": true,
	"REST": true, "TS": true, "JS": true, "Rails": true, "Vue": true, "Unix": true,
}

// softSkills are the interpersonal subset of CategoryProfessional.
var softSkills = map[string]bool{
	"communication": true, "leadership": true, "teamwork": true,
	"problem solving": true, "time management": true, "critical thinking": true,
	"adaptability": true, "creativity": true, "negotiation": true,
	"public speaking": true, "collaboration": true, "attention to detail": true,
	"customer service": true,
}

// technicalCategories count towards technical diversity.
var technicalCategories = map[string]bool{
	CategoryProgramming: true, CategoryWeb: true, CategoryDatabases: true,
	CategoryTools: true, CategoryDataML: true, CategoryMobile: true,
	CategoryNetworking: true, CategoryEngineering: true,
}

// categoryProfiles links taxonomy buckets to the profile they vote for.
var categoryProfiles = map[string]model.ProfileType{
	CategoryProgramming: model.ProfileDeveloper,
	CategoryWeb:         model.ProfileDeveloper,
	CategoryDatabases:   model.ProfileDeveloper,
	CategoryTools:       model.ProfileDeveloper,
	CategoryMobile:      model.ProfileDeveloper,
	CategoryNetworking:  model.ProfileDeveloper,
	CategoryDataML:      model.ProfileData,
	CategoryEngineering: model.ProfileEngineering,
	CategoryDesign:      model.ProfileDesigner,
	CategoryMarketing:   model.ProfileMarketing,
}

// Keyword is a compiled taxonomy entry.
type Keyword struct {
	Name     string
	Category string
	patterns []*regexp.Regexp
}

// Match reports whether the keyword occurs in text as a whole word.
func (k *Keyword) Match(text string) bool {
	for _, p := range k.patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

var (
	keywords []*Keyword
	lookup   map[string]*Keyword
)

func init() {
	lookup = make(map[string]*Keyword)
	for _, cat := range Taxonomy {
		for _, name := range cat.Skills {
			key := normalizeKey(name)
			if _, dup := lookup[key]; dup {
				continue
			}
			terms := append([]string{name}, aliases[name]...)
			kw := &Keyword{Name: name, Category: cat.Name, patterns: compileTerms(terms)}
			keywords = append(keywords, kw)
			for _, term := range terms {
				lookup[normalizeKey(term)] = kw
			}
		}
	}
}

// Keywords returns every compiled taxonomy entry in table order.
func Keywords() []*Keyword {
	return keywords
}

// Lookup resolves a name or alias to its canonical name and category.
func Lookup(name string) (canonical, category string, ok bool) {
	kw, ok := lookup[normalizeKey(name)]
	if !ok {
		return "", "", false
	}
	return kw.Name, kw.Category, true
}

// IsSoftSkill reports whether a canonical skill name is interpersonal.
func IsSoftSkill(name string) bool {
	return softSkills[normalizeKey(name)]
}

// IsTechnicalCategory reports whether category counts as technical.
func IsTechnicalCategory(category string) bool {
	return technicalCategories[category]
}

// ProfileForCategory returns the profile a taxonomy bucket votes for.
func ProfileForCategory(category string) (model.ProfileType, bool) {
	p, ok := categoryProfiles[category]
	return p, ok
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(strings.ReplaceAll(s, "-", " ")), " ")
	return s
}

func compileTerms(terms []string) []*regexp.Regexp {
	var sensitive, insensitive []string
	for _, term := range terms {
		if caseSensitive[term] {
			sensitive = append(sensitive, term)
		} else {
			insensitive = append(insensitive, term)
		}
	}

	var out []*regexp.Regexp
	if len(insensitive) > 0 {
		out = append(out, compileGroup(insensitive, "(?i)"))
	}
	if len(sensitive) > 0 {
		out = append(out, compileGroup(sensitive, ""))
	}
	return out
}

// compileGroup builds a whole-word pattern. Single letters get a stricter
// boundary so "R&D" or "D.C." never count.
func compileGroup(terms []string, flags string) *regexp.Regexp {
	var long, short []string
	for _, term := range terms {
		if len([]rune(term)) == 1 {
			short = append(short, regexp.QuoteMeta(term))
			continue
		}
		long = append(long, flexible(term))
	}

	var parts []string
	if len(long) > 0 {
		parts = append(parts, `(?:^|[^\p{L}\p{N}+#])(?:`+strings.Join(long, "|")+`)(?:$|[^\p{L}\p{N}+#])`)
	}
	if len(short) > 0 {
		parts = append(parts, `(?:^|[\s,;:(/|])(?:`+strings.Join(short, "|")+`)(?:$|[\s,;:)/|])`)
	}
	return regexp.MustCompile(flags + strings.Join(parts, "|"))
}

// flexible quotes a term and lets spaces and hyphens vary.
func flexible(term string) string {
	words := strings.Fields(strings.ReplaceAll(term, "-", " "))
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(words, `[\s\-]*`)
}
