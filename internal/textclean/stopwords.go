package textclean

import "strings"

var stopwords = func() map[string]struct{} {
	words := strings.Fields(`
		a about above after again against ain all am an and any are aren arent as at
		be because been before being below between both but by
		can cannot could couldn couldnt
		d did didn didnt do does doesn doesnt doing don dont down during
		each few for from further
		had hadn hadnt has hasn hasnt have haven havent having he her here hers herself him himself his how
		i if in into is isn isnt it its itself im ive id ill
		just ll m ma me might mightn more most must mustn my myself
		needn no nor not now o of off on once only or other our ours ourselves out over own
		re s same shan shant she shes should shouldn shouldnt so some such
		t than that thats the their theirs them themselves then there these they this those through to too
		under until up ve very
		was wasn wasnt we were weren werent what when where which while who whom why will with won wont would wouldn wouldnt
		y you youd youll youre youve your yours yourself yourselves
		also get got really us
	`)

	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()

func IsStopword(w string) bool {
	_, ok := stopwords[w]
	return ok
}
