package fetch

import "fmt"

// Failure describes a request that exhausted its retries or returned
// a non-retryable status. The crawl records it and skips the item.
type Failure struct {
	URL    string
	Status int
	Err    error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("fetch %s: %s", f.URL, f.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", f.URL, f.Status)
}

func (f *Failure) Unwrap() error { return f.Err }

// ParseFailure means a fetched payload could not be parsed into a
// document at all.
type ParseFailure struct {
	URL string
	Err error
}

func (f *ParseFailure) Error() string {
	return fmt.Sprintf("parse %s: %s", f.URL, f.Err)
}

func (f *ParseFailure) Unwrap() error { return f.Err }
