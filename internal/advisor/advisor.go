package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"CaloriesAdvisor/internal/imaging"
	"CaloriesAdvisor/internal/lib/sl"
	"CaloriesAdvisor/internal/llm"
	"CaloriesAdvisor/internal/models"
	"CaloriesAdvisor/internal/prompt"
)

// Kind tells the presenter how a failed submit should be shown.
type Kind int

const (
	KindNone Kind = iota
	KindUserInput
	KindRequestFailure
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUserInput:
		return "user_input"
	default:
		return "request_failure"
	}
}

// Classify maps an Advise error onto the two error kinds.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	var verr *models.ValidationError
	if errors.Is(err, imaging.ErrNoImage) || errors.As(err, &verr) {
		return KindUserInput
	}
	return KindRequestFailure
}

// Request holds everything captured from one submit.
type Request struct {
	Profile models.UserProfile
	Image   imaging.Source
}

type Report struct {
	Text   string
	Image  models.ImagePayload
	Prompt string
}

type Service struct {
	acquirer *imaging.Acquirer
	analyzer llm.Analyzer
	log      *slog.Logger
}

func NewService(acquirer *imaging.Acquirer, analyzer llm.Analyzer, log *slog.Logger) *Service {
	return &Service{
		acquirer: acquirer,
		analyzer: analyzer,
		log:      log.With(sl.Module("advisor")),
	}
}

// Advise runs one submit end to end. The model is called at most once and
// only after the profile and the image have both been accepted.
func (s *Service) Advise(ctx context.Context, req Request) (Report, error) {
	if err := req.Profile.Validate(); err != nil {
		return Report{}, err
	}

	image, err := s.acquirer.Acquire(req.Image)
	if err != nil {
		return Report{}, err
	}

	text := prompt.Build(req.Profile)
	s.log.With(
		slog.Int("age", req.Profile.Age),
		slog.String("goal", req.Profile.Goal),
		slog.String("mime_type", image.MimeType),
	).Info("Advise(): requesting analysis")

	answer, err := s.analyzer.Analyze(ctx, text, image)
	if err != nil {
		s.log.Error("Advise(): analysis failed", sl.Err(err))
		if !errors.Is(err, llm.ErrRequestFailed) {
			err = fmt.Errorf("%w: %v", llm.ErrRequestFailed, err)
		}
		return Report{Image: image, Prompt: text}, err
	}

	return Report{Text: answer, Image: image, Prompt: text}, nil
}
