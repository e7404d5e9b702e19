package worldgen

// starRow is one entry of the cumulative star-class distribution,
// reproduced verbatim from the STAR_TABLE in
// original_source/src/generate.c. A prose description of these
// frequencies rounds differently than this table's literal cumulative
// deltas; the original's literal numbers are the ground truth, not the
// rounded
// prose percentages.
type starRow struct {
	class               StarClass
	cumulative          float64
	tempLo, tempHi      float64
	massLo, massHi      float64
	lumLo, lumHi        float64
}

var starTable = []starRow{
	{StarM, 0.7650, 2400, 3700, 0.08, 0.45, 0.0001, 0.08},
	{StarK, 0.8860, 3700, 5200, 0.45, 0.80, 0.08, 0.60},
	{StarG, 0.9620, 5200, 6000, 0.80, 1.04, 0.60, 1.50},
	{StarF, 0.9920, 6000, 7500, 1.04, 1.40, 1.50, 5.00},
	{StarA, 0.9980, 7500, 10000, 1.40, 2.10, 5.00, 25.00},
	{StarB, 0.9993, 10000, 30000, 2.10, 16.0, 25.00, 30000.0},
	{StarO, 0.99933, 30000, 50000, 16.0, 90.0, 30000.0, 1000000.0},
	{StarWhiteDwarf, 0.9998, 4000, 40000, 0.17, 1.33, 0.0001, 0.10},
	{StarNeutron, 0.99998, 0, 0, 1.10, 2.16, 0.0, 0.0},
	{StarBlackHole, 1.0000, 0, 0, 3.0, 100.0, 0.0, 0.0},
}

var namePrefix = []string{
	"Al", "Be", "Ca", "De", "El", "Fa", "Ga", "He", "In", "Jo",
	"Ka", "Le", "Ma", "Ne", "Or", "Pa", "Qu", "Re", "Sa", "Te",
	"Um", "Ve", "Wa", "Xe", "Ya", "Ze", "Ar", "Bo", "Cy", "Di",
	"Et", "Fi", "Gi", "Ha", "Ix", "Ju", "Ko", "Li", "Mi", "No",
}

var nameMiddle = []string{
	"ra", "le", "ni", "ta", "so", "mu", "ka", "ri", "do", "ve",
	"na", "li", "pe", "tu", "go", "sa", "mi", "fe", "ba", "lo",
	"ne", "si", "ru", "wa", "ke", "di", "mo", "pa", "ti", "xu",
}

var nameSuffix = []string{
	"x", "n", "s", "r", "th", "m", "l", "d", "k", "ph",
	"ris", "nus", "tis", "lon", "sar", "mir", "dex", "vos", "pis", "tar",
}
