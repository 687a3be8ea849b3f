// Package jobmatch scores how well a resume matches a job description, in process.
//
// The score is the cosine similarity of TF-IDF vectors built over the two
// normalized documents; key terms are the top-weighted terms of each document
// on its own, split into those the resume covers and those it misses.
//
//	client, _ := jobmatch.New(ctx, jobmatch.WithTopN(10))
//	res, err := client.Match(ctx, jobDescription, resume)
//	if errors.Is(err, jobmatch.ErrInvalidInput) {
//	    // one of the documents is blank
//	}
//	fmt.Printf("%.1f%% missing: %v\n", res.Percentage, res.MissingTerms)
//
// Results can be memoized in Valkey or Redis:
//
//	client, _ := jobmatch.New(ctx, jobmatch.WithValkey("localhost:6379", ""))
//	defer client.Close()
package jobmatch
