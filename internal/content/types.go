package content

// Portfolio is the landing page dataset of one locale.
type Portfolio struct {
	Profile     Profile      `yaml:"profile" json:"profile"`
	MainTools   TagGroup     `yaml:"mainTools" json:"mainTools"`
	Roles       TagGroup     `yaml:"roles" json:"roles"`
	Values      TagGroup     `yaml:"values" json:"values"`
	Skills      []SkillGroup `yaml:"skills" json:"skills"`
	Experiences []Experience `yaml:"experiences" json:"experiences"`
	Education   []Education  `yaml:"education" json:"education"`
	Projects    []Project    `yaml:"projects" json:"projects"`
}

type Profile struct {
	Name     string            `yaml:"name" json:"name"`
	Title    string            `yaml:"title" json:"title"`
	Location string            `yaml:"location" json:"location"`
	Summary  string            `yaml:"summary" json:"summary"`
	Avatar   string            `yaml:"avatar,omitempty" json:"avatar,omitempty"`
	Socials  map[string]string `yaml:"socials" json:"socials"`
}

type TagGroup struct {
	Title string `yaml:"title" json:"title"`
	Items []Tag  `yaml:"items" json:"items"`
}

type Tag struct {
	Label       string `yaml:"label" json:"label"`
	Icon        string `yaml:"icon,omitempty" json:"icon,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	To          string `yaml:"to,omitempty" json:"to,omitempty"`
	Type        string `yaml:"type,omitempty" json:"type,omitempty"`
}

type SkillGroup struct {
	Name  string  `yaml:"name" json:"name"`
	Items []Skill `yaml:"items" json:"items"`
}

// Skill level is one of expert, proficient or familiar.
type Skill struct {
	Name  string `yaml:"name" json:"name"`
	Level string `yaml:"level" json:"level"`
	Icon  string `yaml:"icon,omitempty" json:"icon,omitempty"`
}

type Experience struct {
	Company   string     `yaml:"company" json:"company"`
	Link      string     `yaml:"link,omitempty" json:"link,omitempty"`
	Logo      string     `yaml:"logo,omitempty" json:"logo,omitempty"`
	Location  string     `yaml:"location,omitempty" json:"location,omitempty"`
	Type      string     `yaml:"type,omitempty" json:"type,omitempty"`
	Positions []Position `yaml:"positions" json:"positions"`
}

type Position struct {
	Title       string   `yaml:"title" json:"title"`
	Start       string   `yaml:"start" json:"start"`
	End         string   `yaml:"end,omitempty" json:"end,omitempty"`
	Ongoing     bool     `yaml:"ongoing,omitempty" json:"ongoing,omitempty"`
	Description []string `yaml:"description" json:"description"`
	Icons       []string `yaml:"icons,omitempty" json:"icons,omitempty"`
	Link        string   `yaml:"link,omitempty" json:"link,omitempty"`
	LinkLabel   string   `yaml:"linkLabel,omitempty" json:"linkLabel,omitempty"`
}

type Education struct {
	School string   `yaml:"school" json:"school"`
	Degree string   `yaml:"degree" json:"degree"`
	Start  string   `yaml:"start" json:"start"`
	End    string   `yaml:"end" json:"end"`
	Logo   string   `yaml:"logo,omitempty" json:"logo,omitempty"`
	Icons  []string `yaml:"icons,omitempty" json:"icons,omitempty"`
}

type Project struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Thumbnail   string   `yaml:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Status      string   `yaml:"status,omitempty" json:"status,omitempty"`
	Opensource  bool     `yaml:"opensource" json:"opensource"`
	Category    string   `yaml:"category,omitempty" json:"category,omitempty"`
	Links       []Link   `yaml:"links,omitempty" json:"links,omitempty"`
	Icons       []string `yaml:"icons,omitempty" json:"icons,omitempty"`
}

type Link struct {
	Label string `yaml:"label" json:"label"`
	To    string `yaml:"to" json:"to"`
	Icon  string `yaml:"icon,omitempty" json:"icon,omitempty"`
}

// Resume follows the JSON Resume schema (https://jsonresume.org/schema/).
type Resume struct {
	Basics       ResumeBasics        `yaml:"basics" json:"basics"`
	Work         []ResumeWork        `yaml:"work" json:"work"`
	Education    []ResumeEducation   `yaml:"education" json:"education"`
	Skills       []ResumeSkill       `yaml:"skills" json:"skills"`
	Languages    []ResumeLanguage    `yaml:"languages,omitempty" json:"languages,omitempty"`
	Certificates []ResumeCertificate `yaml:"certificates,omitempty" json:"certificates,omitempty"`
	Projects     []ResumeProject     `yaml:"projects,omitempty" json:"projects,omitempty"`
}

type ResumeBasics struct {
	Name     string          `yaml:"name" json:"name"`
	Label    string          `yaml:"label" json:"label"`
	Image    string          `yaml:"image,omitempty" json:"image,omitempty"`
	Email    string          `yaml:"email" json:"email"`
	Phone    string          `yaml:"phone,omitempty" json:"phone,omitempty"`
	URL      string          `yaml:"url,omitempty" json:"url,omitempty"`
	Summary  string          `yaml:"summary" json:"summary"`
	Location ResumeLocation  `yaml:"location" json:"location"`
	Profiles []ResumeProfile `yaml:"profiles,omitempty" json:"profiles,omitempty"`
}

type ResumeLocation struct {
	City    string `yaml:"city" json:"city"`
	Country string `yaml:"country" json:"country"`
}

type ResumeProfile struct {
	Network string `yaml:"network" json:"network"`
	URL     string `yaml:"url" json:"url"`
	Icon    string `yaml:"icon,omitempty" json:"icon,omitempty"`
}

type ResumeWork struct {
	Company    string   `yaml:"company" json:"company"`
	Position   string   `yaml:"position" json:"position"`
	Location   string   `yaml:"location,omitempty" json:"location,omitempty"`
	URL        string   `yaml:"url,omitempty" json:"url,omitempty"`
	StartDate  string   `yaml:"startDate" json:"startDate"`
	EndDate    string   `yaml:"endDate,omitempty" json:"endDate,omitempty"`
	Summary    string   `yaml:"summary,omitempty" json:"summary,omitempty"`
	Highlights []string `yaml:"highlights" json:"highlights"`
}

type ResumeEducation struct {
	Institution string   `yaml:"institution" json:"institution"`
	Area        string   `yaml:"area" json:"area"`
	StudyType   string   `yaml:"studyType" json:"studyType"`
	StartDate   string   `yaml:"startDate" json:"startDate"`
	EndDate     string   `yaml:"endDate,omitempty" json:"endDate,omitempty"`
	Score       string   `yaml:"score,omitempty" json:"score,omitempty"`
	Courses     []string `yaml:"courses,omitempty" json:"courses,omitempty"`
}

type ResumeSkill struct {
	Name     string   `yaml:"name" json:"name"`
	Level    string   `yaml:"level,omitempty" json:"level,omitempty"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

type ResumeLanguage struct {
	Language string `yaml:"language" json:"language"`
	Fluency  string `yaml:"fluency" json:"fluency"`
}

type ResumeCertificate struct {
	Name   string `yaml:"name" json:"name"`
	Date   string `yaml:"date,omitempty" json:"date,omitempty"`
	Issuer string `yaml:"issuer,omitempty" json:"issuer,omitempty"`
	URL    string `yaml:"url,omitempty" json:"url,omitempty"`
}

type ResumeProject struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Highlights  []string `yaml:"highlights" json:"highlights"`
	Keywords    []string `yaml:"keywords" json:"keywords"`
	StartDate   string   `yaml:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate     string   `yaml:"endDate,omitempty" json:"endDate,omitempty"`
	URL         string   `yaml:"url,omitempty" json:"url,omitempty"`
	Roles       []string `yaml:"roles,omitempty" json:"roles,omitempty"`
	Type        string   `yaml:"type,omitempty" json:"type,omitempty"`
}
