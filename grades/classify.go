package grades

type Situation int

const (
	Unclassified Situation = iota
	Passed
	MakeupExam
	FailedForGrade
	FailedForAbsences
)

func (s Situation) String() string {
	switch s {
	case Passed:
		return "Passed"
	case MakeupExam:
		return "Subject to Make-up Exam"
	case FailedForGrade:
		return "Failed for Grade"
	case FailedForAbsences:
		return "Failed for Absences"
	default:
		return ""
	}
}

// Result pairs a record with its final situation. MakeupTarget is only set for
// MakeupExam.
type Result struct {
	Record       Record
	Situation    Situation
	MakeupTarget *float64
}

// Classify applies the policy to a single record. Absences are checked before the
// average. Records that failed to parse are returned Unclassified.
func Classify(policy Policy, record Record) Result {
	result := Result{
		Record: record,
	}

	switch {
	case record.Err != nil:
		result.Situation = Unclassified

	case float64(record.Fouls) > policy.MaxFouls():
		result.Situation = FailedForAbsences

	case record.Average >= policy.PassAverage:
		result.Situation = Passed

	case record.Average >= policy.MakeupAverage:
		target := policy.MakeupBase - record.Average
		result.Situation = MakeupExam
		result.MakeupTarget = &target

	default:
		result.Situation = FailedForGrade
	}

	return result
}

func ClassifyAll(policy Policy, records []Record) []Result {
	results := make([]Result, len(records))
	for i, record := range records {
		results[i] = Classify(policy, record)
	}

	return results
}
