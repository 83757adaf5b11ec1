// Package precomputed reads and writes symmetric distance matrices stored as
// text, one unordered pair per line:
//
//	# id1 id2 distance
//	0 1 0.5
//	0 2 1.25
//	1 2 0.75
//
// Columns are separated by whitespace, commas or semicolons. Blank lines and
// lines starting with "#" or "//" are ignored. After parsing, every pair of
// identifiers between the smallest and the largest one must be present.
//
// A parsed Cache is itself a distance function on identifiers, so the linear
// scan and OPTICS run directly on it:
//
//	cache, err := precomputed.Load(ctx, store, "pairs.txt.zst")
//	if err != nil {
//	    return err
//	}
//	scan := knn.New[core.ID](cache.Relation(), cache)
//	order, err := optics.New(scan).Run(cache.Relation(), 0.5, 4)
package precomputed
