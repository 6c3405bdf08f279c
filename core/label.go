package core

import "github.com/movelab/motifscan/schema"

// labelKey identifies one vocabulary entry: the canonical category pair plus
// the shape signature of the representative instance.
type labelKey struct {
	catA      schema.JointCategory // lexicographically first
	catB      schema.JointCategory
	signature string
}

// Shape signatures: the instance shape, suffixed with "+cross" when a Cross
// run bridges the two episodes.
const crossSuffix = "+cross"

// labelVocabulary is the deterministic mapping from (pair category, shape
// signature) to a motif-type name. New traditions or pairs extend this table;
// the ranking algorithm never branches on labels.
var labelVocabulary = map[labelKey]string{
	{schema.CategoryHand, schema.CategoryHead, string(schema.ApproachDiverge)}:               "Reaching Gesture",
	{schema.CategoryHand, schema.CategoryHead, string(schema.DivergeApproach)}:               "Arm Rise",
	{schema.CategoryHand, schema.CategoryHead, string(schema.ApproachDiverge) + crossSuffix}: "Counter Gesture",
	{schema.CategoryHand, schema.CategoryHead, string(schema.DivergeApproach) + crossSuffix}: "Counter Gesture",

	{schema.CategoryHand, schema.CategoryHand, string(schema.ApproachDiverge)}:               "Arm Coordination",
	{schema.CategoryHand, schema.CategoryHand, string(schema.DivergeApproach)}:               "Opening Arms",
	{schema.CategoryHand, schema.CategoryHand, string(schema.ApproachDiverge) + crossSuffix}: "Bilateral Wave",
	{schema.CategoryHand, schema.CategoryHand, string(schema.DivergeApproach) + crossSuffix}: "Bilateral Wave",

	{schema.CategoryHand, schema.CategoryTorso, string(schema.ApproachDiverge)}:               "Grounding Gesture",
	{schema.CategoryHand, schema.CategoryTorso, string(schema.DivergeApproach)}:               "Cascading Arm",
	{schema.CategoryHand, schema.CategoryTorso, string(schema.ApproachDiverge) + crossSuffix}: "Center Return",
	{schema.CategoryHand, schema.CategoryTorso, string(schema.DivergeApproach) + crossSuffix}: "Center Return",

	{schema.CategoryFoot, schema.CategoryTorso, string(schema.ApproachDiverge)}:               "Grounded Step",
	{schema.CategoryFoot, schema.CategoryTorso, string(schema.DivergeApproach)}:               "Weight Shift",
	{schema.CategoryFoot, schema.CategoryTorso, string(schema.ApproachDiverge) + crossSuffix}: "Support Shift",
	{schema.CategoryFoot, schema.CategoryTorso, string(schema.DivergeApproach) + crossSuffix}: "Support Shift",

	{schema.CategoryHead, schema.CategoryTorso, string(schema.ApproachDiverge)}:               "Torso Wave",
	{schema.CategoryHead, schema.CategoryTorso, string(schema.DivergeApproach)}:               "Spinal Flow",
	{schema.CategoryHead, schema.CategoryTorso, string(schema.ApproachDiverge) + crossSuffix}: "Core Undulation",
	{schema.CategoryHead, schema.CategoryTorso, string(schema.DivergeApproach) + crossSuffix}: "Core Undulation",

	{schema.CategoryFoot, schema.CategoryFoot, string(schema.ApproachDiverge)}: "Step Cycle",
	{schema.CategoryFoot, schema.CategoryFoot, string(schema.DivergeApproach)}: "Stride Opening",
}

// defaultLabel covers category/shape combinations outside the vocabulary.
const defaultLabel = "Movement Pattern"

// LabelFor returns the deterministic motif-type name for an instance.
// Lookup falls back from the full signature to the bare shape before the
// default, so a vocabulary without cross entries still labels bridged motifs.
func LabelFor(inst schema.MotifInstance) string {
	catA := schema.CategoryOf(inst.Pair.A)
	catB := schema.CategoryOf(inst.Pair.B)
	if catB < catA {
		catA, catB = catB, catA
	}

	if label, ok := labelVocabulary[labelKey{catA, catB, shapeSignature(inst)}]; ok {
		return label
	}
	if label, ok := labelVocabulary[labelKey{catA, catB, string(inst.Shape)}]; ok {
		return label
	}
	return defaultLabel
}

// shapeSignature renders the instance shape plus its cross marker.
func shapeSignature(inst schema.MotifInstance) string {
	for _, run := range inst.Runs {
		if run.Symbol == schema.Cross {
			return string(inst.Shape) + crossSuffix
		}
	}
	return string(inst.Shape)
}
