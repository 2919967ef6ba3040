package model

// FetchState represents the lifecycle of a remote fetch owned by a store
type FetchState string

const (
	// FetchStateEmpty means no fetch has happened yet (or the store was reset)
	FetchStateEmpty FetchState = "Empty"

	// FetchStateLoading means a fetch is in flight
	FetchStateLoading FetchState = "Loading"

	// FetchStateSuccess means the last fetch produced usable data
	FetchStateSuccess FetchState = "Success"

	// FetchStateError means the last fetch failed
	FetchStateError FetchState = "Error"
)

// String returns the string representation of FetchState
func (fs FetchState) String() string {
	return string(fs)
}

// IsLoading returns true while a fetch is in flight
func (fs FetchState) IsLoading() bool {
	return fs == FetchStateLoading
}

// IsSettled returns true if the state is a terminal outcome of a fetch
func (fs FetchState) IsSettled() bool {
	return fs == FetchStateSuccess || fs == FetchStateError
}
