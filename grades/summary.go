package grades

type Summary struct {
	Students          int
	Passed            int
	MakeupExam        int
	FailedForGrade    int
	FailedForAbsences int
	Invalid           int
}

func Summarize(results []Result) Summary {
	summary := Summary{
		Students: len(results),
	}

	for _, r := range results {
		switch r.Situation {
		case Passed:
			summary.Passed++
		case MakeupExam:
			summary.MakeupExam++
		case FailedForGrade:
			summary.FailedForGrade++
		case FailedForAbsences:
			summary.FailedForAbsences++
		default:
			summary.Invalid++
		}
	}

	return summary
}
