package profile

import (
	"regexp"
	"strings"

	"github.com/spigell/cv-analyzer/internal/model"
)

const (
	roleITStudent           = "IT Engineering Student"
	roleGeneralProfessional = "General Professional"
)

type roleRule struct {
	match *regexp.Regexp
	role  string
}

// category is one row of the classifier table. Rows are evaluated in
// order for title matching and the same order breaks vote ties.
type category struct {
	profile     model.ProfileType
	title       *regexp.Regexp
	lexicon     []*regexp.Regexp
	roles       []roleRule
	defaultRole string
}

// words builds a case-insensitive whole-word alternation that also works
// for accented terms, which \b does not.
func words(terms ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(?:` + strings.Join(terms, "|") + `)(?:$|[^\p{L}\p{N}])`)
}

// terms compiles one pattern per term so hits can be counted without
// neighbouring terms swallowing each other's boundaries.
func terms(list ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(list))
	for _, t := range list {
		out = append(out, words(t))
	}
	return out
}

func roles(pairs ...string) []roleRule {
	out := make([]roleRule, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, roleRule{match: words(pairs[i]), role: pairs[i+1]})
	}
	return out
}

var categories = []category{
	{
		profile: model.ProfileEngineering,
		title: words(`(?:mechanical|civil|electrical|electronics?|chemical|industrial|aerospace|structural|manufacturing|process|automotive|biomedical|petroleum|environmental|mechatronics?|hvac|quality|production|design|project|field|maintenance|automation|controls?|mining|nuclear|materials)\s+engineer(?:ing)?`,
			`ingénieur`, `ingenieur`),
		lexicon: terms(`engineering`, `mechanical`, `electrical`, `civil`, `structural`, `manufacturing`,
			`autocad`, `solidworks`, `cad`, `plc`, `thermodynamics`, `hvac`, `circuits?`, `maintenance`,
			`industrial`, `prototyping`, `tolerances?`),
		roles: roles(
			`mechanical`, "Mechanical Engineer",
			`electrical|electronics?`, "Electrical Engineer",
			`civil|structural`, "Civil Engineer",
			`chemical|process`, "Chemical Engineer",
			`industrial|manufacturing|production`, "Industrial Engineer",
			`mechatronics?|automation|controls?`, "Automation Engineer",
			`aerospace`, "Aerospace Engineer",
			`biomedical`, "Biomedical Engineer",
			`quality`, "Quality Engineer",
		),
		defaultRole: "Engineer",
	},
	{
		profile: model.ProfileDeveloper,
		title: words(`developer`, `programmer`, `software\s+engineer`, `(?:software|solutions?|cloud|technical|enterprise)\s+architect`,
			`dev\s?ops`, `sre`, `site\s+reliability`, `full[\s-]?stack`, `front[\s-]?end`, `back[\s-]?end`,
			`(?:cloud|platform|qa|test|security|network|systems?)\s+engineer`, `test\s+automation`,
			`system\s+administrator`, `sysadmin`, `coder`, `développeur`, `developpeur`),
		lexicon: terms(`developer`, `development`, `programming`, `software`, `coding`, `backend`, `back-end`,
			`frontend`, `front-end`, `full[\s-]?stack`, `apis?`, `web`, `debugging`, `deployment`,
			`microservices`, `code`, `repository`),
		roles: roles(
			`full[\s-]?stack`, "Full-Stack Developer",
			`front[\s-]?end`, "Frontend Developer",
			`back[\s-]?end`, "Backend Developer",
			`mobile|ios|android|flutter`, "Mobile Developer",
			`dev\s?ops|sre|site\s+reliability`, "DevOps Engineer",
			`(?:software|solutions?|cloud|technical|enterprise)\s+architect`, "Software Architect",
			`qa|test\s+automation|quality\s+assurance`, "QA Engineer",
			`game`, "Game Developer",
			`embedded`, "Embedded Software Engineer",
			`security`, "Security Engineer",
			`network|system\s+administrator|sysadmin`, "Systems Administrator",
			`web`, "Web Developer",
			`software\s+engineer`, "Software Engineer",
		),
		defaultRole: "Software Developer",
	},
	{
		profile: model.ProfileData,
		title: words(`data\s+(?:scientist|analyst|engineer|science)`, `machine\s+learning`, `(?:ml|ai)\s+engineer`,
			`business\s+intelligence`, `bi\s+(?:analyst|developer)`, `analytics`, `statistician`),
		lexicon: terms(`data`, `analytics`, `machine\s+learning`, `statistics`, `statistical`, `models?`,
			`dashboards?`, `visuali[sz]ation`, `datasets?`, `regression`, `insights`, `etl`),
		roles: roles(
			`data\s+scien(?:tist|ce)`, "Data Scientist",
			`data\s+engineer`, "Data Engineer",
			`machine\s+learning|(?:ml|ai)\s+engineer`, "Machine Learning Engineer",
			`business\s+intelligence|bi`, "Business Intelligence Analyst",
		),
		defaultRole: "Data Analyst",
	},
	{
		profile: model.ProfileDesigner,
		title: words(`designer`, `ux`, `ui`, `user\s+experience`, `graphic\s+design`, `product\s+design`,
			`visual\s+design`, `art\s+director`, `creative\s+director`, `illustrator`, `web\s+design`),
		lexicon: terms(`design`, `designer`, `ux`, `ui`, `user\s+experience`, `prototypes?`, `wireframes?`,
			`figma`, `visual`, `branding`, `typography`, `portfolio`, `creative`),
		roles: roles(
			`ux|user\s+experience`, "UX Designer",
			`ui|user\s+interface`, "UI Designer",
			`graphic`, "Graphic Designer",
			`product\s+design`, "Product Designer",
			`motion`, "Motion Designer",
			`web\s+design`, "Web Designer",
		),
		defaultRole: "Designer",
	},
	{
		profile: model.ProfileMarketing,
		title: words(`marketing`, `marketer`, `seo`, `sem`, `social\s+media`, `content\s+(?:manager|strategist|writer|creator)`,
			`brand\s+manager`, `community\s+manager`, `growth`, `public\s+relations`, `copywriter`,
			`communications?\s+(?:manager|specialist|officer)`),
		lexicon: terms(`marketing`, `campaigns?`, `seo`, `brand`, `content`, `social\s+media`, `audience`,
			`engagement`, `advertising`, `promotion`, `market\s+research`, `digital`),
		roles: roles(
			`digital\s+marketing`, "Digital Marketing Specialist",
			`seo|sem`, "SEO Specialist",
			`social\s+media|community\s+manager`, "Social Media Manager",
			`content`, "Content Marketing Specialist",
			`brand`, "Brand Manager",
			`marketing\s+(?:manager|director|lead)|head\s+of\s+marketing`, "Marketing Manager",
		),
		defaultRole: "Marketing Specialist",
	},
	{
		profile: model.ProfileSales,
		title: words(`sales`, `account\s+(?:executive|manager)`, `business\s+development`, `bdr`, `sdr`,
			`commercial`, `key\s+account`, `customer\s+success`, `sales\s+representative`, `vendeur`, `vendeuse`),
		lexicon: terms(`sales`, `clients?`, `customers?`, `revenue`, `quotas?`, `negotiation`, `leads?`,
			`deals?`, `pipeline`, `accounts?`, `crm`, `prospects?`, `prospecting`, `targets?`),
		roles: roles(
			`account\s+executive`, "Account Executive",
			`account\s+manager|key\s+account`, "Account Manager",
			`business\s+development|bdr|sdr`, "Business Development Representative",
			`sales\s+(?:manager|director|lead)|head\s+of\s+sales`, "Sales Manager",
			`customer\s+success`, "Customer Success Manager",
		),
		defaultRole: "Sales Representative",
	},
}

func categoryFor(p model.ProfileType) (category, bool) {
	for _, c := range categories {
		if c.profile == p {
			return c, true
		}
	}
	return category{}, false
}

func (c category) role(texts ...string) string {
	for _, r := range c.roles {
		for _, t := range texts {
			if t != "" && r.match.MatchString(t) {
				return r.role
			}
		}
	}
	return c.defaultRole
}

var (
	reStudent = words(`students?`, `undergraduate`, `undergrad`, `étudiante?`, `etudiante?`,
		`(?:1st|2nd|3rd|4th|5th|first|second|third|fourth|fifth|final)[\s-]year`,
		`freshman`, `sophomore`, `currently\s+enrolled`, `expected\s+graduation`,
		`graduating\s+in`, `pursuing\s+(?:a\s+|an\s+|my\s+)?(?:bachelor|master|degree|b\.?sc|m\.?sc|engineering)`)

	reITDiscipline = words(`computer\s+science`, `computer\s+engineering`, `software\s+engineering`,
		`information\s+technology`, `information\s+systems`, `informatique`, `génie\s+logiciel`,
		`genie\s+logiciel`, `génie\s+informatique`, `data\s+science`, `cyber\s?security`,
		`network\s+engineering`, `telecommunications?`, `artificial\s+intelligence`)

	reTitleWord = words(`engineer`, `developer`, `manager`, `specialist`, `consultant`, `analyst`,
		`director`, `assistant`, `officer`, `coordinator`, `technician`, `designer`, `architect`,
		`administrator`, `executive`, `representative`, `accountant`, `teacher`, `lecturer`, `nurse`,
		`lawyer`, `scientist`, `intern`, `student`, `trainee`, `lead`, `head\s+of`, `supervisor`,
		`agent`, `advisor`, `adviser`, `clerk`, `associate`, `programmer`, `marketer`, `strategist`,
		`writer`, `editor`, `researcher`, `founder`, `ceo`, `cto`, `cfo`, `coo`, `president`,
		`freelancer?`, `auditor`, `controller`, `recruiter`, `buyer`, `planner`, `operator`,
		`ingénieur`, `développeur`, `chef\s+de\s+projet`)

	reContact = regexp.MustCompile(`(?i)[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}|https?://|www\.|linkedin\.com|github\.com`)
	rePhone   = regexp.MustCompile(`\+?\d[\d\s().\-]{7,}\d`)
)

const minPhoneDigits = 9

// isContact reports whether line carries an email, a profile link or a
// phone number. Year ranges look like phone numbers but have too few digits.
func isContact(line string) bool {
	if reContact.MatchString(line) {
		return true
	}
	for _, m := range rePhone.FindAllString(line, -1) {
		var digits int
		for _, r := range m {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= minPhoneDigits {
			return true
		}
	}
	return false
}
