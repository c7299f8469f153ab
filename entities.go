package main

import (
	"strings"
	"time"
)

// Project is a portfolio project. Remote entries come from the GitHub
// listing verbatim; manual entries are defined below at build time. Neither
// kind is mutated after construction.
type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	HTMLURL     string   `json:"html_url"`
	Language    string   `json:"language"`
	Topics      []string `json:"topics"`
	Stars       int      `json:"stargazers_count"`
	Fork        bool     `json:"fork"`
	Featured    bool     `json:"featured,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

func (p Project) EntityName() string { return p.Name }
func (p Project) SearchText() string { return p.Name + " " + p.Description }
func (p Project) EntityTags() []string {
	tags := make([]string, 0, len(p.Topics)+1)
	if p.Language != "" {
		tags = append(tags, p.Language)
	}
	return append(tags, p.Topics...)
}
func (p Project) SortDate() time.Time { return parseEntityDate(p.CreatedAt) }
func (p Project) Highlighted() bool   { return p.Featured }

// Skill is a resume skill with an optional highlight flag surfaced as a
// pseudo-tag by the pipeline.
type Skill struct {
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Summary   string   `json:"summary"`
	Keywords  []string `json:"keywords"`
	Highlight bool     `json:"highlight"`
	Since     string   `json:"since"`
}

func (s Skill) EntityName() string { return s.Name }
func (s Skill) SearchText() string { return s.Name + " " + s.Summary }
func (s Skill) EntityTags() []string {
	tags := make([]string, 0, len(s.Keywords)+1)
	if s.Category != "" {
		tags = append(tags, s.Category)
	}
	return append(tags, s.Keywords...)
}
func (s Skill) SortDate() time.Time { return parseEntityDate(s.Since) }
func (s Skill) Highlighted() bool   { return s.Highlight }

// Certification is an earned credential.
type Certification struct {
	Name     string   `json:"name"`
	Issuer   string   `json:"issuer"`
	Summary  string   `json:"summary"`
	Topics   []string `json:"topics"`
	IssuedAt string   `json:"issued_at"`
	URL      string   `json:"url,omitempty"`
}

func (c Certification) EntityName() string { return c.Name }
func (c Certification) SearchText() string {
	return c.Name + " " + c.Issuer + " " + c.Summary
}
func (c Certification) EntityTags() []string {
	tags := make([]string, 0, len(c.Topics)+1)
	if c.Issuer != "" {
		tags = append(tags, c.Issuer)
	}
	return append(tags, c.Topics...)
}
func (c Certification) SortDate() time.Time { return parseEntityDate(c.IssuedAt) }
func (c Certification) Highlighted() bool   { return false }

// TimelineItem is a work or education entry on the resume page.
type TimelineItem struct {
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	Kind         string   `json:"kind"` // "work" or "education"
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	BulletPoints []string `json:"bullet_points"`
	Current      bool     `json:"current"`
}

func (t TimelineItem) EntityName() string { return t.Title }
func (t TimelineItem) SearchText() string {
	return t.Title + " " + t.Organization + " " + strings.Join(t.BulletPoints, " ")
}
func (t TimelineItem) EntityTags() []string { return []string{t.Kind} }
func (t TimelineItem) SortDate() time.Time  { return parseEntityDate(t.StartDate) }
func (t TimelineItem) Highlighted() bool    { return t.Current }

// Manual project entries merged after the GitHub listing. These are kept for
// work that never lived in a public repository.
var ManualProjects = []Project{
	{
		Name: "goimap-mail",
		Description: "A terminal-based email client built in Go with fuzzyfinder capabilities " +
			"using the Charmbracelet TUI framework and go-imap.",
		Language:  "Go",
		Topics:    []string{"tui", "email", "imap"},
		Featured:  true,
		CreatedAt: "2024-03-11",
		UpdatedAt: "2025-01-04",
	},
	{
		Name: "tunegrab",
		Description: "A terminal-based music streaming application with an elegant TUI interface, " +
			"leveraging yt-dlp and mpv for YouTube Music playback from the command line.",
		Language:  "Go",
		Topics:    []string{"tui", "music", "streaming"},
		CreatedAt: "2024-07-22",
		UpdatedAt: "2024-11-30",
	},
	{
		Name: "game-recommender",
		Description: "A machine learning-powered web application that uses TF-IDF vectorization and " +
			"cosine similarity to recommend games based on content analysis.",
		Language:  "Python",
		Topics:    []string{"machine-learning", "flask"},
		CreatedAt: "2023-10-05",
		UpdatedAt: "2024-02-18",
	},
}

var Skills = []Skill{
	{Name: "Go", Category: "languages", Summary: "Backend services, CLIs, and this site.", Keywords: []string{"gin", "sqlite"}, Highlight: true, Since: "2022-06-01"},
	{Name: "TypeScript", Category: "languages", Summary: "Frontend work and API tooling.", Keywords: []string{"react", "node"}, Highlight: true, Since: "2021-01-15"},
	{Name: "Python", Category: "languages", Summary: "Data analysis and machine learning experiments.", Keywords: []string{"pandas", "scikit-learn"}, Since: "2019-09-01"},
	{Name: "SQL", Category: "data", Summary: "Schema design and query tuning on SQLite and Postgres.", Keywords: []string{"sqlite", "postgres"}, Since: "2020-02-01"},
	{Name: "Docker", Category: "infrastructure", Summary: "Container builds and deployment pipelines.", Keywords: []string{"ci", "deployment"}, Since: "2022-01-10"},
	{Name: "Project Management", Category: "process", Summary: "Agile planning and cross-team coordination.", Keywords: []string{"agile", "scrum"}, Since: "2022-07-01"},
}

var Certifications = []Certification{
	{Name: "CompTIA Project+", Issuer: "CompTIA", Summary: "Agile project management methodology.", Topics: []string{"project-management", "agile"}, IssuedAt: "2022-07-15"},
	{Name: "AWS Cloud Practitioner", Issuer: "AWS", Summary: "Cloud fundamentals and core AWS services.", Topics: []string{"cloud", "aws"}, IssuedAt: "2023-03-02"},
	{Name: "Machine Learning Specialization", Issuer: "Coursera", Summary: "Supervised and unsupervised learning foundations.", Topics: []string{"machine-learning"}, IssuedAt: "TBD"},
}

var Timeline = []TimelineItem{
	{
		Title:        "Presentation Expert",
		Organization: "Target",
		Kind:         "work",
		StartDate:    "2023-08-01",
		EndDate:      "",
		Current:      true,
		BulletPoints: []string{
			"Executed over 300 merchandising transitions on tight timelines by organizing team workflows and adapting quickly to changing priorities",
			"Boosted operational efficiency by managing backroom inventory processes and streamlining communication between floor and logistics teams",
			"Enhanced pricing and signage accuracy across departments by standardizing daily checks and collaborating cross-functionally",
		},
	},
	{
		Title:        "Manager",
		Organization: "Jasons Catered Events",
		Kind:         "work",
		StartDate:    "2016-08-01",
		EndDate:      "",
		Current:      true,
		BulletPoints: []string{
			"Improved client satisfaction by coordinating customized menus and ensuring all dietary requirements were accurately met",
			"Supported event technology by troubleshooting AV equipment and managing digital order tracking systems",
			"Maintained supply inventory and coordinated timely delivery between venues, optimizing resource allocation",
		},
	},
	{
		Title:        "Bachelor of Computer Science",
		Organization: "Western Governors University",
		Kind:         "education",
		StartDate:    "2019-09-01",
		EndDate:      "2023-05-01",
		BulletPoints: []string{
			"Graduated Magna Cum Laude with 3.8 GPA",
			"Relevant coursework: Data Structures, Algorithms, Web Development",
			"Senior project: Machine Learning recommendation system",
		},
	},
}
