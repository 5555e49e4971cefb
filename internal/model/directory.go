package model

// NotSpecified is the sentinel stored in an optional judge field when the
// profile page does not provide it.
const NotSpecified = "not specified"

// MainSectionName names the synthetic subsection created for a section that
// has no subsection menu of its own.
const MainSectionName = "main section"

// Directory is the complete judge directory collected in one run.
// It serializes as a JSON array of sections.
type Directory []Section

// Section is a top-level division of the court's structure page.
//
// The section URL is not part of the output document; it is only needed
// while crawling and lives in crawler.SectionRef.
type Section struct {
	// Name is the tab caption with line breaks collapsed.
	Name string `json:"section_name"`

	// Code is the site's identifier for the section. Nil when the tab
	// carries no code attribute value.
	Code *string `json:"section_code"`

	// SubsectionsCount is len(Subsections), stored explicitly because it is
	// part of the output format.
	SubsectionsCount int `json:"subsections_count"`

	// Subsections are in page order.
	Subsections []Subsection `json:"subsections"`
}

// Subsection is a division within a section, or the section itself when
// the site does not subdivide it.
type Subsection struct {
	Name string `json:"subsection_name"`
	URL  string `json:"subsection_url"`

	// Code is nil for the synthetic main section.
	Code *string `json:"subsection_code"`

	JudgesCount int     `json:"judges_count"`
	Judges      []Judge `json:"judges"`
}

// Judge is one roster entry. Name, Position and PhotoURL come from the
// listing card; the rest comes from the profile page and falls back to
// NotSpecified.
type Judge struct {
	Name        string   `json:"name"`
	Position    string   `json:"position"`
	PhotoURL    string   `json:"photo_url"`
	Class       string   `json:"class"`
	Appointment string   `json:"appointment"`
	Career      []string `json:"career"`
	Education   string   `json:"education"`
	Awards      string   `json:"awards"`
}

// NewJudge returns a Judge built from listing card fields with every
// detail field set to its default.
func NewJudge(name, position, photoURL string) Judge {
	return Judge{
		Name:        name,
		Position:    position,
		PhotoURL:    photoURL,
		Class:       NotSpecified,
		Appointment: NotSpecified,
		Career:      []string{},
		Education:   NotSpecified,
		Awards:      NotSpecified,
	}
}

// HasDetails reports whether any profile-only field differs from its default.
func (j Judge) HasDetails() bool {
	return j.Class != NotSpecified ||
		j.Appointment != NotSpecified ||
		j.Education != NotSpecified ||
		j.Awards != NotSpecified ||
		len(j.Career) > 0
}

// NewSection builds a Section and fills in SubsectionsCount.
func NewSection(name string, code *string, subsections []Subsection) Section {
	if subsections == nil {
		subsections = []Subsection{}
	}
	return Section{
		Name:             name,
		Code:             code,
		SubsectionsCount: len(subsections),
		Subsections:      subsections,
	}
}

// AddSubsection appends sub and keeps SubsectionsCount in step.
func (s *Section) AddSubsection(sub Subsection) {
	s.Subsections = append(s.Subsections, sub)
	s.SubsectionsCount = len(s.Subsections)
}

// NewSubsection builds a Subsection and fills in JudgesCount.
func NewSubsection(name, url string, code *string, judges []Judge) Subsection {
	if judges == nil {
		judges = []Judge{}
	}
	return Subsection{
		Name:        name,
		URL:         url,
		Code:        code,
		JudgesCount: len(judges),
		Judges:      judges,
	}
}

// Stats holds aggregate counts over a Directory.
type Stats struct {
	Sections    int `json:"sections"`
	Subsections int `json:"subsections"`
	Judges      int `json:"judges"`

	// WithDetails counts judges whose profile contributed at least one field.
	WithDetails int `json:"with_details"`
}

// Stats computes aggregate counts. Judges are counted from the slices, not
// from JudgesCount, so a hand-edited document cannot skew the totals.
func (d Directory) Stats() Stats {
	var s Stats
	s.Sections = len(d)
	for _, sec := range d {
		s.Subsections += sec.SubsectionsCount
		for _, sub := range sec.Subsections {
			s.Judges += len(sub.Judges)
			for _, j := range sub.Judges {
				if j.HasDetails() {
					s.WithDetails++
				}
			}
		}
	}
	return s
}

// StringPtr returns a pointer to s. It is a convenience for nullable codes.
func StringPtr(s string) *string {
	return &s
}
