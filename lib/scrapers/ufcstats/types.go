package ufcstats

// Fraction is a landed/attempted pair from an "X of Y" stat cell.
type Fraction struct {
	Landed    int `json:"landed"`
	Attempted int `json:"attempted"`
}

// Record is a fighter's professional win-loss-draw line.
type Record struct {
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	Draws      int `json:"draws"`
	NoContests int `json:"no_contests"`
}

// Fighter is a fighter-details page: the bio box, career averages and the
// fight history table. Stat fields are nil when the page shows no value.
type Fighter struct {
	ID  string `json:"id"`
	URL string `json:"url"`

	Name     *string `json:"name"`
	Nickname *string `json:"nickname"`
	Record   *Record `json:"record"`

	Height *string `json:"height"`
	Weight *string `json:"weight"`
	Reach  *string `json:"reach"`
	Stance *string `json:"stance"`
	DOB    *string `json:"dob"`

	SLpM   *float64 `json:"slpm"`
	StrAcc *int     `json:"str_acc"`
	SApM   *float64 `json:"sapm"`
	StrDef *int     `json:"str_def"`
	TDAvg  *float64 `json:"td_avg"`
	TDAcc  *int     `json:"td_acc"`
	TDDef  *int     `json:"td_def"`
	SubAvg *float64 `json:"sub_avg"`

	Fights []FightSummary `json:"fights"`
}

// FightSummary is one row of the fight history table, seen from the page
// owner's side. Round and Time stay verbatim because upcoming bouts render
// placeholders there.
type FightSummary struct {
	FightURL string `json:"fight_url"`
	FightID  string `json:"fight_id"`

	Result     *string `json:"result"`
	Opponent   *string `json:"opponent_name"`
	OpponentID *string `json:"opponent_id"`

	KD  *int `json:"kd"`
	Str *int `json:"str"`
	TD  *int `json:"td"`
	Sub *int `json:"sub"`

	EventName *string `json:"event_name"`
	EventURL  *string `json:"event_url"`
	EventID   *string `json:"event_id"`
	Date      *string `json:"date"`

	Method  *string `json:"method"`
	Details *string `json:"details"`
	Round   *string `json:"round"`
	Time    *string `json:"time"`
}

// Event is an event-details page: card metadata plus references to its
// fights.
type Event struct {
	ID  string `json:"id"`
	URL string `json:"url"`

	Name     *string `json:"name"`
	Date     *string `json:"date"`
	Location *string `json:"location"`

	Fights []FightRef `json:"fights"`
}

// FightRef points at a fight-details page from an event card.
type FightRef struct {
	FightURL string `json:"fight_url"`
	FightID  string `json:"fight_id"`
}

// Corner is one of the two fighter blocks at the top of a fight page, kept
// in the order the page renders them.
type Corner struct {
	Name     string  `json:"name"`
	ID       string  `json:"id"`
	URL      string  `json:"url"`
	Nickname *string `json:"nickname"`
	Result   *string `json:"result"`
}

// FighterStats is one fighter's line of a stats table, either the fight
// totals or a single round. SigStrTotal and the fields after it come from
// the significant strikes table and stay nil when that table is missing.
type FighterStats struct {
	Name string `json:"name"`
	ID   string `json:"id"`

	KD          *int      `json:"kd"`
	SigStr      *Fraction `json:"sig_str"`
	SigStrPct   *int      `json:"sig_str_pct"`
	TotalStr    *Fraction `json:"total_str"`
	TD          *Fraction `json:"td"`
	TDPct       *int      `json:"td_pct"`
	SubAtt      *int      `json:"sub_att"`
	Rev         *int      `json:"rev"`
	CtrlSeconds *int      `json:"ctrl_seconds"`

	SigStrTotal       *Fraction `json:"sig_str_total"`
	SigStrPctDetailed *int      `json:"sig_str_pct_detailed"`
	Head              *Fraction `json:"head"`
	Body              *Fraction `json:"body"`
	Leg               *Fraction `json:"leg"`
	Distance          *Fraction `json:"distance"`
	Clinch            *Fraction `json:"clinch"`
	Ground            *Fraction `json:"ground"`
}

// RoundStats is both fighters' lines for one round.
type RoundStats struct {
	Round    int            `json:"round"`
	Fighters []FighterStats `json:"fighters"`
}

// Fight is a fight-details page: corners, outcome and the stats tables.
type Fight struct {
	ID  string `json:"id"`
	URL string `json:"url"`

	EventID   *string `json:"event_id"`
	EventURL  *string `json:"event_url"`
	EventName *string `json:"event_name"`

	Fighters []Corner `json:"fighters"`

	WeightClass  *string `json:"weight_class"`
	IsTitleFight *bool   `json:"is_title_fight"`

	Method     *string `json:"method"`
	Round      *int    `json:"round"`
	Time       *string `json:"time"`
	TimeFormat *string `json:"time_format"`
	Referee    *string `json:"referee"`
	Details    *string `json:"details"`

	Totals []FighterStats `json:"totals"`
	Rounds []RoundStats   `json:"rounds"`
}
