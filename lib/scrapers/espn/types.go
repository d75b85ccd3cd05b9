package espn

// Profile is the identity block from a fighter's landing page.
type Profile struct {
	ID            string  `json:"id"`
	URL           string  `json:"url"`
	NameSlug      *string `json:"name_slug"`
	Name          *string `json:"name"`
	FightingStyle *string `json:"fighting_style"`
}

// Bio is the structured card from the bio page plus the W-L-D stat block.
// Every field is optional; pages for obscure fighters omit most of them.
type Bio struct {
	Country     *string `json:"country"`
	WeightClass *string `json:"weight_class"`
	Height      *string `json:"height"`
	Weight      *string `json:"weight"`
	// HeightWeight keeps the combined HT/WT text when it does not split
	// cleanly into the two fields above.
	HeightWeight *string `json:"height_weight"`
	Birthdate    *string `json:"birthdate"`
	Age          *int    `json:"age"`
	Team         *string `json:"team"`
	Nickname     *string `json:"nickname"`
	Stance       *string `json:"stance"`
	Reach        *string `json:"reach"`
	Record       *string `json:"record"`
	KORecord     *string `json:"ko_record"`
	SubRecord    *string `json:"sub_record"`
}

// StatRow is one fight line from a career stats table. The identifying
// columns are typed; every other column keeps its on-page header as the
// metrics key, so new columns survive without code changes.
type StatRow struct {
	Date        *string           `json:"date"`
	Opponent    *string           `json:"opponent"`
	OpponentURL *string           `json:"opponent_url"`
	OpponentID  *string           `json:"opponent_id"`
	EventURL    *string           `json:"event_url"`
	EventID     *string           `json:"event_id"`
	Result      *string           `json:"result"`
	Metrics     map[string]string `json:"metrics"`
}

// StatsSections maps the striking, clinch and ground tables to their rows,
// keyed by the fight join key.
type StatsSections map[string]map[string]StatRow

// HistoryFight is one row of the fight history table, with the per-area
// stats attached afterwards when the stats page has a matching fight.
type HistoryFight struct {
	Date        *string `json:"date"`
	Opponent    *string `json:"opponent"`
	OpponentURL *string `json:"opponent_url"`
	OpponentID  *string `json:"opponent_id"`
	Result      *string `json:"result"`
	Method      *string `json:"method"`
	Round       *string `json:"round"`
	Time        *string `json:"time"`
	Event       *string `json:"event"`
	EventURL    *string `json:"event_url"`
	EventID     *string `json:"event_id"`
	// Extras holds columns the canonical header set does not cover.
	Extras map[string]string `json:"extras,omitempty"`

	Striking map[string]string `json:"striking,omitempty"`
	Clinch   map[string]string `json:"clinch,omitempty"`
	Ground   map[string]string `json:"ground,omitempty"`
}

func (f HistoryFight) empty() bool {
	return f.Date == nil && f.Opponent == nil && f.OpponentURL == nil &&
		f.Result == nil && f.Method == nil && f.Round == nil && f.Time == nil &&
		f.Event == nil && f.EventURL == nil && len(f.Extras) == 0
}

// ScheduleEvent is one row of the yearly schedule table.
type ScheduleEvent struct {
	URL      string  `json:"url"`
	ID       string  `json:"id"`
	Name     *string `json:"name"`
	Date     *string `json:"date"`
	Location *string `json:"location"`
	League   *string `json:"league"`
	Year     int     `json:"year"`
	// FightOfTheNight is the bonus-winning bout as printed, absent for
	// future events and years that did not award one.
	FightOfTheNight *string `json:"fight_of_the_night"`
}

// Bout is one fight on an event card.
type Bout struct {
	FighterIDs   []string `json:"fighter_ids"`
	FighterNames []string `json:"fighter_names"`
	CardSegment  string   `json:"card_segment"`
	BoutOrder    int      `json:"bout_order_in_segment"`
	IsFOTN       bool     `json:"is_fotn,omitempty"`
}

// Event is a fightcenter page: the bouts in card order plus links to every
// fighter on it. Date, location, league and the bonus info come from the
// schedule row and are merged in by the caller.
type Event struct {
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	Name        *string  `json:"name"`
	FighterURLs []string `json:"fighter_urls"`
	Fights      []Bout   `json:"fights"`

	Date            *string `json:"date"`
	Location        *string `json:"location"`
	League          *string `json:"league"`
	Year            *int    `json:"year"`
	FightOfTheNight *string `json:"fight_of_the_night"`
}

// Fighter is the composed record built from a fighter's four pages.
type Fighter struct {
	Profile
	Bio
	BioURL     string               `json:"bio_url"`
	StatsURL   string               `json:"stats_url"`
	HistoryURL string               `json:"history_url"`
	Fights     []HistoryFight       `json:"fights"`
	Candidates map[Kind][]Candidate `json:"candidates,omitempty"`
}
