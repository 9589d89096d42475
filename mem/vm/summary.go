package vm

// Summary counts the outcomes of a list of results.
type Summary struct {
	Successful int `json:"successful"`
	PageFaults int `json:"page_faults"`
	Errors     int `json:"errors"`
}

// Total returns the number of results counted.
func (s Summary) Total() int {
	return s.Successful + s.PageFaults + s.Errors
}

// Add returns the sum of two summaries.
func (s Summary) Add(other Summary) Summary {
	return Summary{
		Successful: s.Successful + other.Successful,
		PageFaults: s.PageFaults + other.PageFaults,
		Errors:     s.Errors + other.Errors,
	}
}

// Summarize counts successful translations, page faults and errors.
func Summarize(results []Result) Summary {
	s := Summary{}

	for _, r := range results {
		switch r.(type) {
		case Success:
			s.Successful++
		case PageFault:
			s.PageFaults++
		case Error:
			s.Errors++
		}
	}

	return s
}
