// Package query turns a free-text query into the three feature sets
// used for ranking: the whole phrase, whitespace-delimited keywords,
// and overlapping character bigrams.
//
// Bigrams stand in for words in scripts written without spaces. They
// are only produced when the query has no usable keywords or contains
// Japanese or Chinese characters, so space-delimited queries are not
// flooded with two-letter noise.
package query
