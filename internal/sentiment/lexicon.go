package sentiment

// lexicon is a film-review-oriented subset of the AFINN-165 valence
// list. Valences range -5..5.
var lexicon = map[string]int{
	// Strongly positive.
	"masterpiece": 5,
	"breathtaking": 5,
	"superb": 5,
	"outstanding": 5,
	"phenomenal": 4,
	"brilliant": 4,
	"amazing": 4,
	"wonderful": 4,
	"fantastic": 4,
	"incredible": 4,
	"magnificent": 4,
	"stunning": 4,
	"flawless": 4,
	"perfect": 3,
	"excellent": 3,
	"beautiful": 3,
	"gorgeous": 3,
	"hilarious": 3,
	"loved": 3,
	"love": 3,
	"favorite": 3,
	"favourite": 3,
	"delightful": 3,
	"gripping": 3,
	"captivating": 3,
	"mesmerizing": 3,
	"unforgettable": 3,
	"great": 3,
	"best": 3,
	"awesome": 3,
	"thrilling": 3,
	"moving": 2,
	"touching": 2,
	"charming": 2,
	"funny": 2,
	"enjoyable": 2,
	"enjoyed": 2,
	"good": 2,
	"solid": 2,
	"clever": 2,
	"smart": 2,
	"fun": 2,
	"beautifully": 2,
	"entertaining": 2,
	"memorable": 2,
	"impressive": 2,
	"compelling": 2,
	"satisfying": 2,
	"rewatchable": 2,
	"liked": 2,
	"like": 2,
	"sweet": 2,
	"warm": 2,
	"fine": 1,
	"decent": 1,
	"nice": 1,
	"okay": 1,
	"interesting": 1,
	"cool": 1,
	"watchable": 1,

	// Negative.
	"meh": -1,
	"slow": -1,
	"bland": -1,
	"forgettable": -1,
	"mediocre": -1,
	"overlong": -1,
	"uneven": -2,
	"boring": -2,
	"dull": -2,
	"weak": -2,
	"messy": -2,
	"disappointing": -2,
	"disappointed": -2,
	"overrated": -2,
	"tedious": -2,
	"predictable": -2,
	"clunky": -2,
	"annoying": -2,
	"shallow": -2,
	"pointless": -2,
	"confusing": -2,
	"bad": -3,
	"awful": -3,
	"terrible": -3,
	"horrible": -3,
	"dreadful": -3,
	"hated": -3,
	"hate": -3,
	"painful": -3,
	"lifeless": -3,
	"unwatchable": -4,
	"atrocious": -4,
	"abysmal": -4,
	"garbage": -4,
	"worst": -4,
	"insufferable": -4,
	"unbearable": -4,
	"disaster": -4,
	"disgusting": -5,
	"excruciating": -5,
	"irredeemable": -5,
	"embarrassment": -5,
	"catastrophic": -5,
}
