package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/james-bowman/nlp"
	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/dataset"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/textclean"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

const TOPIC_SEED = 42

// TopicAnalyzer fits an LDA model over the cleaned column and assigns every
// row its dominant topic.
type TopicAnalyzer struct {
	profile config.TopicProfile
}

func NewTopicAnalyzer(p config.TopicProfile) *TopicAnalyzer {
	return &TopicAnalyzer{profile: p}
}

func (a *TopicAnalyzer) Technique() models.Technique { return models.TechniqueTopic }

func (a *TopicAnalyzer) Params(p models.Params) (models.Params, error) {
	k := p.Topics
	if k == 0 {
		k = a.profile.Default
	}
	if k < a.profile.Min || k > a.profile.Max {
		return models.Params{}, fmt.Errorf("%w: topics must be between %d and %d, got %d",
			ErrInvalidParams, a.profile.Min, a.profile.Max, k)
	}
	return models.Params{Topics: k}, nil
}

func (a *TopicAnalyzer) Analyze(ctx context.Context, ds *dataset.Dataset, column string, p models.Params) (models.AnalysisResult, error) {
	p, err := a.Params(p)
	if err != nil {
		return nil, err
	}

	texts, ok, err := columnText(ds, column)
	if err != nil {
		return nil, err
	}

	docs := make([][]string, len(texts))
	for i, text := range texts {
		if ok[i] {
			docs[i] = textclean.Tokens(textclean.Plain(text))
		}
	}

	vocab := topTerms(docs, a.profile.MaxFeatures)
	if len(vocab) == 0 {
		return nil, ErrEmptyVocabulary
	}

	// only rows with at least one retained term take part in the fit
	var corpus []string
	var rows []int
	for i, doc := range docs {
		kept := doc[:0:0]
		for _, w := range doc {
			if _, in := vocab[w]; in {
				kept = append(kept, w)
			}
		}
		if len(kept) > 0 {
			corpus = append(corpus, strings.Join(kept, " "))
			rows = append(rows, i)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vectoriser := nlp.NewCountVectoriser()
	lda := nlp.NewLatentDirichletAllocation(p.Topics)
	// a fixed seed and a single worker keep the fit a function of its input
	lda.Rnd = rand.New(rand.NewSource(TOPIC_SEED))
	lda.Processes = 1
	lda.Iterations = a.profile.Iterations
	lda.TransformationPasses = a.profile.Iterations / 2

	pipeline := nlp.NewPipeline(vectoriser, lda)
	docsOverTopics, err := pipeline.FitTransform(corpus...)
	if err != nil {
		return nil, fmt.Errorf("failed to fit topic model: %w", err)
	}
	if len(vectoriser.Vocabulary) == 0 {
		return nil, ErrEmptyVocabulary
	}

	assignments := make([]int, len(texts))
	for i := range assignments {
		assignments[i] = -1
	}
	for doc, row := range rows {
		assignments[row] = dominantTopic(docsOverTopics, doc)
	}

	slog.Debug("[TopicAnalyzer] Fitted model",
		slog.Int("topics", p.Topics),
		slog.Int("documents", len(corpus)),
		slog.Int("vocabulary", len(vectoriser.Vocabulary)))

	return &models.TopicResult{
		Topics:      p.Topics,
		Assignments: assignments,
		Keywords:    topicKeywords(lda.Components(), vectoriser.Vocabulary, a.profile.TopWords),
	}, nil
}

// topTerms keeps the max most frequent terms of the corpus, ties broken
// alphabetically. max <= 0 keeps everything.
func topTerms(docs [][]string, max int) map[string]struct{} {
	counts := make(map[string]int)
	for _, doc := range docs {
		for _, w := range doc {
			counts[w]++
		}
	}

	terms := make([]string, 0, len(counts))
	for w := range counts {
		terms = append(terms, w)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if max > 0 && len(terms) > max {
		terms = terms[:max]
	}

	vocab := make(map[string]struct{}, len(terms))
	for _, w := range terms {
		vocab[w] = struct{}{}
	}
	return vocab
}

// dominantTopic is the argmax of column doc of a topics x documents matrix.
func dominantTopic(docsOverTopics mat.Matrix, doc int) int {
	topics, _ := docsOverTopics.Dims()
	winner, best := 0, docsOverTopics.At(0, doc)
	for t := 1; t < topics; t++ {
		if v := docsOverTopics.At(t, doc); v > best {
			winner, best = t, v
		}
	}
	return winner
}

type weightedTerm struct {
	Word   string
	Weight float64
}

func topicKeywords(topicsOverWords mat.Matrix, vocabulary map[string]int, top int) [][]string {
	topics, words := topicsOverWords.Dims()

	vocab := make([]string, len(vocabulary))
	for w, idx := range vocabulary {
		vocab[idx] = w
	}

	keywords := make([][]string, topics)
	for t := 0; t < topics; t++ {
		terms := make([]weightedTerm, 0, words)
		for w := 0; w < words && w < len(vocab); w++ {
			terms = append(terms, weightedTerm{Word: vocab[w], Weight: topicsOverWords.At(t, w)})
		}
		sort.Slice(terms, func(i, j int) bool {
			if terms[i].Weight != terms[j].Weight {
				return terms[i].Weight > terms[j].Weight
			}
			return terms[i].Word < terms[j].Word
		})
		if top > 0 && len(terms) > top {
			terms = terms[:top]
		}

		keywords[t] = make([]string, len(terms))
		for i, term := range terms {
			keywords[t][i] = term.Word
		}
	}
	return keywords
}
