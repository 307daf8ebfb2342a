package policy

// Missing is the placeholder written for text fields whose value could not
// be salvaged.
const Missing = "N/A"

// Canonical policy categories.
const (
	TypeAutomobile = "AUTOMOBILE"
	TypeHealth     = "HEALTH"
	TypeTravel     = "TRAVEL"
	TypeHome       = "HOME"
	TypeLife       = "LIFE"
)

// Canonical state names recognized by the state rule.
const (
	StateNewYork      = "NEW YORK"
	StatePennsylvania = "PENNSYLVANIA"
	StateCalifornia   = "CALIFORNIA"
	StateIllinois     = "ILLINOIS"
	StateTexas        = "TEXAS"
	StateOhio         = "OHIO"
	StateFlorida      = "FLORIDA"
)

// Config carries everything the rules close over: alias tables, the date
// layout fallback chain, and the email pattern. Passing it explicitly keeps
// the pipeline referentially transparent and testable with alternate tables.
type Config struct {
	// TypeAliases maps free-form policy types to canonical categories.
	// Lookups are case-sensitive; unmatched values pass through unchanged.
	TypeAliases map[string]string
	// StateAliases maps uppercased state names and abbreviations to the
	// canonical full names. Values outside the table are relabeled Missing.
	StateAliases map[string]string
	// DateLayouts is the ordered parse fallback chain; first match wins.
	DateLayouts []string
	// DatePlaceholders are literal strings treated as absent dates.
	DatePlaceholders []string
	// EmailPattern is the anchored pattern an email must fully match.
	EmailPattern string
	// Missing is the placeholder for unsalvageable text fields.
	Missing string
}

// DefaultConfig returns the standard rule tables for the policy dataset.
func DefaultConfig() Config {
	return Config{
		TypeAliases: map[string]string{
			"auto": TypeAutomobile, "Auto": TypeAutomobile, "AUTO": TypeAutomobile,
			"car": TypeAutomobile, "Car": TypeAutomobile,
			"automobile": TypeAutomobile, "Automobile": TypeAutomobile, TypeAutomobile: TypeAutomobile,
			"health": TypeHealth, "Health": TypeHealth, TypeHealth: TypeHealth,
			"medical": TypeHealth, "Medical": TypeHealth,
			"travel": TypeTravel, "Travel": TypeTravel, TypeTravel: TypeTravel,
			"trip": TypeTravel, "Trip": TypeTravel,
			"home": TypeHome, "Home": TypeHome, TypeHome: TypeHome,
			"house": TypeHome, "House": TypeHome,
			"life": TypeLife, "Life": TypeLife, TypeLife: TypeLife,
		},
		StateAliases: map[string]string{
			"NY": StateNewYork, StateNewYork: StateNewYork,
			"PA": StatePennsylvania, StatePennsylvania: StatePennsylvania,
			"CA": StateCalifornia, StateCalifornia: StateCalifornia,
			"IL": StateIllinois, StateIllinois: StateIllinois,
			"TX": StateTexas, StateTexas: StateTexas,
			"OH": StateOhio, StateOhio: StateOhio,
			"FL": StateFlorida, StateFlorida: StateFlorida,
		},
		// Month-day layouts come before day-month; inputs valid under both
		// resolve to the earlier entry by design.
		DateLayouts: []string{
			"2006-01-02",
			"01/02/2006",
			"01-02-2006",
			"02-01-2006",
			"2006/01/02",
			"20060102",
		},
		DatePlaceholders: []string{"NULL", "Invalid Date"},
		EmailPattern:     `^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`,
		Missing:          Missing,
	}
}
