package simcli

// Config holds configuration for a command-line batch run.
type Config struct {
	RosterFile      string  // path of the roster JSON file
	OutputFile      string  // summary destination; empty means stdout
	Matches         int     // number of contests to simulate
	KFactor         float64 // rating sensitivity constant
	Arcade          bool    // enable win-streak bonus
	StreakBonus     float64 // per-streak-step bonus fraction
	DrawProbability float64 // probability of a draw outcome
	DecayPerDay     float64 // rating decay per inactive tick
	MinRating       float64 // decay floor
	BaseRating      float64 // initial rating for generated participants
	Seed            int64   // random seed, meaningful when SeedSet
	SeedSet         bool    // whether a seed was supplied
	Init            bool    // create a sample roster file and exit
	InitCount       int     // number of sample participants for Init
	Verbose         bool    // enable debug logging
}
