package score

// Band is one quality level on the 0-100 mess scale.
type Band struct {
	// Max is the exclusive upper bound, except for the final band
	// which only matches a perfect 100.
	Max         float64
	Name        string
	Label       string
	Description string
}

// bands in ascending order of mess. The labels are part of the tool's
// personality; do not sanitize them.
var bands = []Band{
	{5, "clean", "Fresh as spring breeze", "Code so clean, it's a joy to read—like a spa day for your eyes."},
	{15, "mild", "A whiff of trouble", "Mostly fine, but a little stinky. Air it out and you'll survive."},
	{25, "moderate", "Slightly stinky youth", "A faint whiff, open a window and hope for the best."},
	{40, "bad", "Code reeks, mask up", "Code is starting to stink, approach with caution and a mask."},
	{55, "terrible", "Medium legacy mess", "Obvious code odor, even fresh air can't save it."},
	{65, "disaster", "Hidden toxic tumor", "Fun to write, but you'll cry when you have to fix it."},
	{75, "severe", "Severe legacy mess", "Toxic fumes everywhere, gas mask recommended."},
	{85, "very_bad", "Code graveyard, no one survives", "No programmer enters and leaves alive—abandon hope."},
	{95, "extreme", "Nuclear disaster zone", "A crime against humanity, best to incinerate it."},
	{100, "worst", "Generational legacy mess", "Legacy mess, built by generations, impossible to maintain."},
	{100, "ultimate", "Ultimate King of Mess", "So wild your own mother would disown you for writing it."},
}

// BandFor maps a composite score to its quality band. Only a perfect
// 100 reaches the last band.
func BandFor(score float64) Band {
	for _, b := range bands[:len(bands)-1] {
		if score < b.Max {
			return b
		}
	}
	return bands[len(bands)-1]
}

// Bands returns the full band table in ascending order.
func Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}

// scoreComments keyed by decade, used for the one-line verdict next to
// the overall score.
var scoreComments = []string{
	"Like a spring breeze, kissed by angels—code so clean it heals your soul.",
	"Fresh and pleasant, like morning dew—almost makes you want to refactor for fun.",
	"A hint of fragrance, sometimes a whiff of funk—still safe to touch.",
	"A bit smelly, but not lethal—just hold your nose and keep going.",
	"Stench hits you, mask recommended—read at your own risk.",
	"Toxic fumes everywhere, code review is torture—bring snacks and tissues.",
	"Stench fills the air, maintainers coughing blood—pray for mercy.",
	"Biohazard zone, write your will before taking over—may luck be with you.",
	"Nuclear waste site, bring a hazmat suit—every edit is a gamble.",
	"Disaster level tumor, every glance shortens your life by ten years—run while you still can.",
}

// Comment returns the verdict line for a score.
func Comment(score float64) string {
	decade := int(score) / 10
	if decade >= len(scoreComments) {
		decade = len(scoreComments) - 1
	}
	if decade < 0 {
		decade = 0
	}
	return scoreComments[decade]
}
