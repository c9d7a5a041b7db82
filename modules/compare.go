package modules

// Diff is the outcome of comparing two hosts' catalogs. Slice order is not
// specified; renderers that need stable output must sort.
type Diff struct {
	// OnlyLeft holds records whose full name appears only in the left input.
	OnlyLeft []Record
	// OnlyRight holds records whose full name appears only in the right input.
	OnlyRight []Record
	// Mismatched pairs records sharing a name and version whose build times
	// differ.
	Mismatched []Mismatch
}

// Mismatch is one build-time disagreement. Older always carries the strictly
// earlier build time; OlderOnLeft records which input side it came from so a
// renderer can label hosts without the comparator knowing any.
type Mismatch struct {
	Older       Record
	Newer       Record
	OlderOnLeft bool
}

// Compare reconciles two catalogs into the three result sets. It is a pure
// function of its inputs and cannot fail.
//
// Presence is keyed on the full name, with the last entry winning when a
// catalog repeats one. The mismatch pass works on the full input slices
// instead: records are grouped by base name, and for every name present on
// both sides each left record is paired against each right record, emitting a
// pair whenever the versions match exactly and the build times differ. A
// catalog that repeats a name/version therefore produces every pairwise
// combination; that sharp edge is deliberate and kept.
func Compare(left, right []Record) Diff {
	leftByFull := keyByFullName(left)
	rightByFull := keyByFullName(right)

	var d Diff
	for full, r := range leftByFull {
		if _, ok := rightByFull[full]; !ok {
			d.OnlyLeft = append(d.OnlyLeft, r)
		}
	}
	for full, r := range rightByFull {
		if _, ok := leftByFull[full]; !ok {
			d.OnlyRight = append(d.OnlyRight, r)
		}
	}

	rightByName := groupByName(right)
	for name, ls := range groupByName(left) {
		rs, ok := rightByName[name]
		if !ok {
			continue
		}
		for _, lr := range ls {
			for _, rr := range rs {
				if lr.Version != rr.Version || lr.BuildTime.Equal(rr.BuildTime) {
					continue
				}
				if lr.BuildTime.Before(rr.BuildTime) {
					d.Mismatched = append(d.Mismatched, Mismatch{Older: lr, Newer: rr, OlderOnLeft: true})
				} else {
					d.Mismatched = append(d.Mismatched, Mismatch{Older: rr, Newer: lr, OlderOnLeft: false})
				}
			}
		}
	}
	return d
}

func keyByFullName(recs []Record) map[string]Record {
	m := make(map[string]Record, len(recs))
	for _, r := range recs {
		m[r.FullName] = r
	}
	return m
}

func groupByName(recs []Record) map[string][]Record {
	m := make(map[string][]Record)
	for _, r := range recs {
		m[r.Name] = append(m[r.Name], r)
	}
	return m
}
