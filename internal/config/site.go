package config

import (
	"fmt"
	"time"

	"dario.cat/mergo"
)

// Timeouts are the bounded waits for structural elements.
type Timeouts struct {
	// Sections bounds the wait for the section tab table on the listing page.
	Sections time.Duration `yaml:"sections,omitempty"`

	// Subsections bounds the wait for a section's subsection menu.
	Subsections time.Duration `yaml:"subsections,omitempty"`

	// Judges bounds the wait for a subsection's persons list.
	Judges time.Duration `yaml:"judges,omitempty"`

	// Detail bounds the wait for the name heading on a profile page.
	Detail time.Duration `yaml:"detail,omitempty"`

	// Navigation bounds a single page load.
	Navigation time.Duration `yaml:"navigation,omitempty"`
}

// DefaultTimeouts returns the timeouts the court site needs.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Sections:    DefaultSectionsTimeout,
		Subsections: DefaultSubsectionsTimeout,
		Judges:      DefaultJudgesTimeout,
		Detail:      DefaultDetailTimeout,
		Navigation:  DefaultNavigationTimeout,
	}
}

func (t Timeouts) valid() bool {
	return t.Sections > 0 && t.Subsections > 0 && t.Judges > 0 && t.Detail > 0 && t.Navigation > 0
}

// Delays are the fixed waits after each navigation. A zero delay skips
// the wait.
type Delays struct {
	Listing    time.Duration
	Section    time.Duration
	Subsection time.Duration
	Detail     time.Duration
}

// DelaysFile is the delays block of the config file. Nil fields keep the
// configured value, so an explicit 0s disables a delay.
type DelaysFile struct {
	Listing    *time.Duration `yaml:"listing,omitempty"`
	Section    *time.Duration `yaml:"section,omitempty"`
	Subsection *time.Duration `yaml:"subsection,omitempty"`
	Detail     *time.Duration `yaml:"detail,omitempty"`
}

// apply overlays the set fields onto d.
func (f DelaysFile) apply(d *Delays) {
	for _, field := range []struct {
		src *time.Duration
		dst *time.Duration
	}{
		{f.Listing, &d.Listing},
		{f.Section, &d.Section},
		{f.Subsection, &d.Subsection},
		{f.Detail, &d.Detail},
	} {
		if field.src != nil {
			*field.dst = *field.src
		}
	}
}

// DefaultDelays returns the settle delays the court site needs.
func DefaultDelays() Delays {
	return Delays{
		Listing:    DefaultListingDelay,
		Section:    DefaultSectionDelay,
		Subsection: DefaultSubsectionDelay,
		Detail:     DefaultDetailDelay,
	}
}

func (d Delays) valid() bool {
	return d.Listing >= 0 && d.Section >= 0 && d.Subsection >= 0 && d.Detail >= 0
}

// Selectors describe the court site's markup. All values are CSS selectors
// except the attribute names and the text markers.
type Selectors struct {
	// SectionTable is the tab table on the listing page.
	SectionTable string `yaml:"sectionTable,omitempty"`

	// SectionLinks are the tab anchors, queried inside SectionTable.
	SectionLinks string `yaml:"sectionLinks,omitempty"`

	// SectionCodeAttr is the attribute carrying a section's site identifier.
	SectionCodeAttr string `yaml:"sectionCodeAttr,omitempty"`

	// SubsectionMenu is the menu container on a section page.
	SubsectionMenu string `yaml:"subsectionMenu,omitempty"`

	// SubsectionLinks are the anchors inside SubsectionMenu.
	SubsectionLinks string `yaml:"subsectionLinks,omitempty"`

	// SubsectionMarker is the href fragment identifying a subsection link.
	// The subsection code is the text following it.
	SubsectionMarker string `yaml:"subsectionMarker,omitempty"`

	// PersonsList is the persons list container on a subsection page.
	PersonsList string `yaml:"personsList,omitempty"`

	// PersonCards are the direct child cards of PersonsList.
	PersonCards string `yaml:"personCards,omitempty"`

	// CardName is the anchor holding a judge's name and profile link.
	CardName string `yaml:"cardName,omitempty"`

	// CardPosition holds the judge's position on the card.
	CardPosition string `yaml:"cardPosition,omitempty"`

	// CardPhoto is the photo image on the card.
	CardPhoto string `yaml:"cardPhoto,omitempty"`

	// DetailName is the name heading on a profile page.
	DetailName string `yaml:"detailName,omitempty"`

	// DetailPosition holds the position on a profile page.
	DetailPosition string `yaml:"detailPosition,omitempty"`

	// Paragraph selects the paragraphs searched for ClassMarker and
	// AppointmentMarker.
	Paragraph string `yaml:"paragraph,omitempty"`

	// ClassMarker identifies the qualification class paragraph.
	ClassMarker string `yaml:"classMarker,omitempty"`

	// AppointmentMarker identifies the appointment order paragraph.
	AppointmentMarker string `yaml:"appointmentMarker,omitempty"`

	// CareerItems are the career entries on a profile page.
	CareerItems string `yaml:"careerItems,omitempty"`

	// CareerYear and CareerText are queried inside each career item.
	CareerYear string `yaml:"careerYear,omitempty"`
	CareerText string `yaml:"careerText,omitempty"`

	// Education and Awards are the optional biography blocks.
	Education string `yaml:"education,omitempty"`
	Awards    string `yaml:"awards,omitempty"`
}

// DefaultSelectors returns the selectors matching the court site's markup.
func DefaultSelectors() Selectors {
	return Selectors{
		SectionTable:      "table.vs-tabs",
		SectionLinks:      "a[data-code]",
		SectionCodeAttr:   "data-code",
		SubsectionMenu:    "#vs-structure-menu-dynamic",
		SubsectionLinks:   `a[href*="subsection="]`,
		SubsectionMarker:  "subsection=",
		PersonsList:       ".vs-structure-list-persons",
		PersonCards:       ".vs-structure-list-persons > div.clearfix",
		CardName:          "h2 a",
		CardPosition:      ".vs-structure-list-persons-position",
		CardPhoto:         ".vs-structure-list-persons-photo img",
		DetailName:        ".vs-person-detail-name",
		DetailPosition:    ".vs-person-detail-position",
		Paragraph:         "p",
		ClassMarker:       "квалификационный класс",
		AppointmentMarker: "Постановление",
		CareerItems:       ".vs-person-detail-career-item",
		CareerYear:        ".vs-person-detail-career-item-year",
		CareerText:        ".vs-person-detail-career-item-text",
		Education:         ".vs-person-detail-education",
		Awards:            ".vs-person-detail-awards",
	}
}

// BrowserFile holds the browser settings of the config file.
type BrowserFile struct {
	// Bin is the browser executable path.
	Bin string `yaml:"bin,omitempty"`

	// Headless overrides the headful default when set.
	Headless *bool `yaml:"headless,omitempty"`
}

// File represents the structure of the .courtscan configuration file.
// Every field is optional; omitted fields keep their defaults.
type File struct {
	BaseURL        string      `yaml:"baseURL,omitempty"`
	Output         string      `yaml:"output,omitempty"`
	Markdown       string      `yaml:"markdown,omitempty"`
	Driver         string      `yaml:"driver,omitempty"`
	Browser        BrowserFile `yaml:"browser,omitempty"`
	Timeouts       Timeouts    `yaml:"timeouts,omitempty"`
	Delays         DelaysFile  `yaml:"delays,omitempty"`
	Selectors      Selectors   `yaml:"selectors,omitempty"`
	PersistPartial bool        `yaml:"persistPartial,omitempty"`
	Archive        bool        `yaml:"archive,omitempty"`
}

// Apply overlays the file's settings onto cfg. Scalar fields replace the
// config value when set; timeouts, delays and selectors are overlaid field by
// field so a file may override a single selector.
func (f *File) Apply(cfg *Config) error {
	if f.BaseURL != "" {
		cfg.BaseURL = f.BaseURL
	}
	if f.Output != "" {
		cfg.OutputPath = f.Output
	}
	if f.Markdown != "" {
		cfg.MarkdownPath = f.Markdown
	}
	if f.Driver != "" {
		cfg.Driver = f.Driver
	}
	if f.Browser.Bin != "" {
		cfg.BrowserBin = f.Browser.Bin
	}
	if f.Browser.Headless != nil {
		cfg.Headless = *f.Browser.Headless
	}
	if f.PersistPartial {
		cfg.PersistPartial = true
	}
	if f.Archive {
		cfg.Archive = true
	}

	timeouts := f.Timeouts
	if err := mergo.Merge(&timeouts, cfg.Timeouts); err != nil {
		return fmt.Errorf("failed to merge timeouts: %w", err)
	}
	cfg.Timeouts = timeouts

	f.Delays.apply(&cfg.Delays)

	selectors := f.Selectors
	if err := mergo.Merge(&selectors, cfg.Selectors); err != nil {
		return fmt.Errorf("failed to merge selectors: %w", err)
	}
	cfg.Selectors = selectors

	return nil
}
