package seq

// Only exported for testing.
var (
	SetFastaRdSize = setFastaRdSize
	SplitCmmt      = splitCmmt
)

const DefaultReadSize = defaultReadSize
