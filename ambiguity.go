package cmdparser

// AmbiguityConsumer receives every pair of sibling children that can both
// match the same input, along with the set of input examples that prove
// it, so a caller can log or fail a build over unintentionally ambiguous
// grammar.
type AmbiguityConsumer func(parent, child, sibling CommandNode, inputs []string)

// CheckAmbiguities walks node's subtree reporting, via consumer, every
// pair of sibling children whose Examples() overlap under IsValidInput —
// i.e. some example accepted by one child is also accepted by the other.
// Every pair is checked, argument-vs-argument pairs included (String and
// StringWord, for instance, both accept the example "word"), mirroring
// RelevantNodes's own brute-force literal lookahead.
func CheckAmbiguities(node CommandNode, consumer AmbiguityConsumer) {
	children := node.Children().Values()
	for i, child := range children {
		for _, sibling := range children[i+1:] {
			var shared []string
			for _, example := range child.Examples() {
				if sibling.IsValidInput(example) {
					shared = append(shared, example)
				}
			}
			for _, example := range sibling.Examples() {
				if child.IsValidInput(example) && !contains(shared, example) {
					shared = append(shared, example)
				}
			}
			if len(shared) > 0 {
				consumer(node, child, sibling, shared)
			}
		}
		CheckAmbiguities(child, consumer)
	}
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
