// Package processor drives a translation run. It walks the source rows batch
// by batch, hands each batch to the translator, merges the results into the
// output columns and persists the complete table after every batch, pausing
// between batches. Any failure ends the run; the file on disk then holds
// every batch that completed before it.
package processor
