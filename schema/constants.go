package schema

// Custom string types for type safety.
type (
	// BreakdownKey represents keys used in cluster score breakdowns.
	BreakdownKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string

	// Shape is the qualitative shape signature of a motif instance.
	Shape string

	// JointCategory is the coarse body-part class of a joint, used by the
	// label vocabulary.
	JointCategory string
)

// Breakdown keys used in cluster scoring.
const (
	BreakdownRecurrence BreakdownKey = "recurrence" // membership count
	BreakdownSalience   BreakdownKey = "salience"   // representative duration
	BreakdownAmplitude  BreakdownKey = "amplitude"  // representative peak distance change
)

// All output modes supported.
const (
	TableOut OutputMode = "table" // default
	CSVOut   OutputMode = "csv"
	JSONOut  OutputMode = "json"
)

// All run-store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Motif shape signatures emitted by the scanner.
const (
	ApproachDiverge Shape = "approach-diverge"
	DivergeApproach Shape = "diverge-approach"
)

// Joint categories recognized by the label vocabulary.
const (
	CategoryHand  JointCategory = "hand"
	CategoryFoot  JointCategory = "foot"
	CategoryHead  JointCategory = "head"
	CategoryTorso JointCategory = "torso"
	CategoryLimb  JointCategory = "limb"
	CategoryOther JointCategory = "other"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TableOut: {},
	CSVOut:   {},
	JSONOut:  {},
}

// ValidDatabaseBackends lists all valid run-store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// DefaultPairs is the documented eight-pair relation set of the reference
// deployment.
var DefaultPairs = []JointPair{
	NewJointPair("l_hand", "head"),
	NewJointPair("r_hand", "head"),
	NewJointPair("l_hand", "r_hand"),
	NewJointPair("l_hand", "pelvis"),
	NewJointPair("r_hand", "pelvis"),
	NewJointPair("l_foot", "pelvis"),
	NewJointPair("r_foot", "pelvis"),
	NewJointPair("head", "pelvis"),
}

// jointDisplayNames maps capture joint identifiers to viewer labels.
var jointDisplayNames = map[string]string{
	"head":      "Head",
	"neck":      "Neck",
	"sternum":   "Sternum",
	"spine_mid": "Spine Mid",
	"pelvis":    "Pelvis",
	"l_hand":    "L Hand",
	"r_hand":    "R Hand",
	"l_elbow":   "L Elbow",
	"r_elbow":   "R Elbow",
	"l_knee":    "L Knee",
	"r_knee":    "R Knee",
	"l_foot":    "L Foot",
	"r_foot":    "R Foot",
}

// DisplayName returns the viewer label for a joint identifier, falling back
// to the identifier itself for joints outside the documented set.
func DisplayName(joint string) string {
	if name, ok := jointDisplayNames[joint]; ok {
		return name
	}
	return joint
}

// jointCategories maps capture joint identifiers to label-vocabulary categories.
var jointCategories = map[string]JointCategory{
	"head":      CategoryHead,
	"neck":      CategoryHead,
	"sternum":   CategoryTorso,
	"spine_mid": CategoryTorso,
	"pelvis":    CategoryTorso,
	"l_hand":    CategoryHand,
	"r_hand":    CategoryHand,
	"l_elbow":   CategoryLimb,
	"r_elbow":   CategoryLimb,
	"l_knee":    CategoryLimb,
	"r_knee":    CategoryLimb,
	"l_foot":    CategoryFoot,
	"r_foot":    CategoryFoot,
}

// CategoryOf returns the label-vocabulary category for a joint identifier.
func CategoryOf(joint string) JointCategory {
	if cat, ok := jointCategories[joint]; ok {
		return cat
	}
	return CategoryOther
}

// AlignWeights are the tunable penalties of the sequence-alignment similarity
// score. The exact weighting is deliberately a parameter, not a constant.
type AlignWeights struct {
	SymbolMismatch float64 // substituting one symbol run for another
	LengthMismatch float64 // relative length difference between matched runs
	Gap            float64 // inserting or deleting a run
}

// DefaultAlignWeights returns the documented default alignment penalties.
func DefaultAlignWeights() AlignWeights {
	return AlignWeights{
		SymbolMismatch: 1.0,
		LengthMismatch: 0.5,
		Gap:            1.0,
	}
}

// DefaultScoreWeights returns the default weight map for cluster scoring.
// Recurrence dominates: a motif is interesting primarily because it repeats.
func DefaultScoreWeights() map[BreakdownKey]float64 {
	return map[BreakdownKey]float64{
		BreakdownRecurrence: 0.50,
		BreakdownSalience:   0.35,
		BreakdownAmplitude:  0.15,
	}
}
