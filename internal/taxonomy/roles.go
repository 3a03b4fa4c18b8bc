// Package taxonomy holds the static role and seniority tables that drive
// question selection. All tables are built once at package init and are
// read-only afterwards, so every lookup is safe for concurrent use.
package taxonomy

// Category is the internal tag clustering related job-role labels.
type Category string

// DefaultCategory is returned for any role label that is not in the table.
const DefaultCategory Category = "default"

// Known category tags.
const (
	CategorySoftwareDev     Category = "software_dev"
	CategoryFrontend        Category = "frontend"
	CategoryBackend         Category = "backend"
	CategoryMobile          Category = "mobile"
	CategoryGaming          Category = "gaming"
	CategoryEmbedded        Category = "embedded"
	CategoryDataScience     Category = "data_science"
	CategoryDataAnalysis    Category = "data_analysis"
	CategoryMLEngineer      Category = "ml_engineer"
	CategoryAIEngineer      Category = "ai_engineer"
	CategoryNLP             Category = "nlp"
	CategoryComputerVision  Category = "computer_vision"
	CategoryBI              Category = "bi"
	CategoryBigData         Category = "big_data"
	CategoryDataEngineering Category = "data_engineering"
	CategoryCybersecurity   Category = "cybersecurity"
	CategoryPentesting      Category = "pentesting"
	CategoryNetworking      Category = "networking"
	CategorySOC             Category = "soc"
	CategoryCloud           Category = "cloud"
	CategoryCloudArch       Category = "cloud_arch"
	CategoryDevOps          Category = "devops"
	CategorySRE             Category = "sre"
	CategorySystems         Category = "systems"
	CategoryDatabase        Category = "database"
	CategoryQA              Category = "qa"
	CategoryAutomation      Category = "automation"
	CategoryProduct         Category = "product"
	CategoryBlockchain      Category = "blockchain"
	CategoryARVR            Category = "ar_vr"
	CategoryIoT             Category = "iot"
	CategoryRobotics        Category = "robotics"
)

// generalTechnology is the display name for every category without its own.
const generalTechnology = "General Technology"

// Role is one entry of the role table.
type Role struct {
	Label    string   `json:"role"`
	Category Category `json:"category"`
}

// roles is ordered the way the labels are offered to callers.
var roles = []Role{
	// Software development
	{"Software Engineer", CategorySoftwareDev},
	{"Software Developer", CategorySoftwareDev},
	{"Full Stack Developer", CategorySoftwareDev},
	{"Frontend Developer", CategoryFrontend},
	{"Backend Developer", CategoryBackend},
	{"Mobile Application Developer", CategoryMobile},
	{"Web Developer", CategoryFrontend},
	{"Game Developer", CategoryGaming},
	{"Embedded Systems Engineer", CategoryEmbedded},

	// Data, AI and ML
	{"Data Scientist", CategoryDataScience},
	{"Data Analyst", CategoryDataAnalysis},
	{"Machine Learning Engineer", CategoryMLEngineer},
	{"AI Engineer", CategoryAIEngineer},
	{"Deep Learning Engineer", CategoryMLEngineer},
	{"NLP Engineer", CategoryNLP},
	{"Computer Vision Engineer", CategoryComputerVision},
	{"Business Intelligence Analyst", CategoryBI},
	{"Big Data Engineer", CategoryBigData},
	{"Data Engineer", CategoryDataEngineering},

	// Cybersecurity
	{"Cybersecurity Analyst", CategoryCybersecurity},
	{"Information Security Engineer", CategoryCybersecurity},
	{"Ethical Hacker", CategoryPentesting},
	{"Penetration Tester", CategoryPentesting},
	{"Network Engineer", CategoryNetworking},
	{"Network Security Engineer", CategoryCybersecurity},
	{"SOC Analyst", CategorySOC},

	// Cloud and DevOps
	{"Cloud Engineer", CategoryCloud},
	{"Cloud Solutions Architect", CategoryCloudArch},
	{"DevOps Engineer", CategoryDevOps},
	{"Site Reliability Engineer (SRE)", CategorySRE},
	{"Systems Engineer", CategorySystems},

	// Database and systems
	{"Database Administrator (DBA)", CategoryDatabase},
	{"Systems Programmer", CategorySystems},

	// Product and testing
	{"QA Engineer / Software Tester", CategoryQA},
	{"Automation Test Engineer", CategoryAutomation},
	{"Technical Product Manager", CategoryProduct},

	// Emerging tech
	{"Blockchain Developer", CategoryBlockchain},
	{"AR/VR Developer", CategoryARVR},
	{"IoT Engineer", CategoryIoT},
	{"Robotics Software Engineer", CategoryRobotics},
}

var displayNames = map[Category]string{
	CategorySoftwareDev:   "Software Development",
	CategoryDataScience:   "Data Science",
	CategoryMLEngineer:    "Machine Learning",
	CategoryCybersecurity: "Cybersecurity",
	CategoryDevOps:        "DevOps & Cloud",
	CategoryFrontend:      "Frontend Development",
	CategoryBackend:       "Backend Development",
	CategoryDatabase:      "Database Administration",
	DefaultCategory:       generalTechnology,
}

var categoryByRole = func() map[string]Category {
	m := make(map[string]Category, len(roles))
	for _, r := range roles {
		m[r.Label] = r.Category
	}
	return m
}()

// CategoryOf returns the category for a role label. Matching is exact;
// unmapped labels resolve to DefaultCategory.
func CategoryOf(role string) Category {
	if c, ok := categoryByRole[role]; ok {
		return c
	}
	return DefaultCategory
}

// DisplayNameOf returns the human-readable name of a category, or
// "General Technology" for categories without one.
func DisplayNameOf(c Category) string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return generalTechnology
}

// Roles returns a copy of the role table in declaration order.
func Roles() []Role {
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}
