// 18 Oct 2026

/*
Bseq works with multiple sequence alignments and the markers that
annotate their columns.

Usage:
	bseq filter  [flags] [input]
	bseq keep    [flags] [input]
	bseq mask    [flags] [input]
	bseq coords  [flags] [input]
	bseq encode  [flags] [input]
	bseq squash  [flags] reference [input]
	bseq randseq [flags] nseq length

Markers are read from a toml file given by --conf (see package config).
With --gaps, a marker called "gaps" is made from the gaps in the
alignment, so
	bseq filter --gaps --marker gaps aln.fa
removes every column with a gap in it.

If no input file is given, stdin will be used. If no output file is
given (-o), stdout will be used.

Any flag can also come from the environment, with a BSEQ_ prefix, so
BSEQ_CONF=markers.toml is the same as --conf markers.toml.

The reference for squash is tricky. It is a string, so it may have to
be quoted on the command line. It must be contained within the comment
of a sequence, and the first match wins. If it is an integer like "1",
it is the number of the sequence, counting from 1.
*/
package main
