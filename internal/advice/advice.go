// Package advice — внешний советник по стрижкам. Никогда не возвращает
// ошибку вызывающему: любые сбои превращаются в фиксированный текст.
package advice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

type FaceShape string

const (
	FaceOval   FaceShape = "Ovale"
	FaceRound  FaceShape = "Rond"
	FaceSquare FaceShape = "Carré"
	FaceHeart  FaceShape = "Coeur"
	FaceLong   FaceShape = "Allongé"
)

type HairType string

const (
	HairStraight HairType = "Lisse"
	HairWavy     HairType = "Ondulé"
	HairCurly    HairType = "Bouclé"
	HairFrizzy   HairType = "Frisé"
	HairFine     HairType = "Fin"
)

type Occasion string

const (
	OccasionWedding  Occasion = "Mariage"
	OccasionWork     Occasion = "Travail"
	OccasionEveryday Occasion = "Vie Quotidienne"
	OccasionParty    Occasion = "Soirée"
	OccasionSport    Occasion = "Sport"
)

var (
	faceShapes = []FaceShape{FaceOval, FaceRound, FaceSquare, FaceHeart, FaceLong}
	hairTypes  = []HairType{HairStraight, HairWavy, HairCurly, HairFrizzy, HairFine}
	occasions  = []Occasion{OccasionWedding, OccasionWork, OccasionEveryday, OccasionParty, OccasionSport}
)

// Тексты-заглушки.
const (
	FallbackNotConfigured = "Le conseiller IA n'est pas encore configuré. Parcourez les galeries de nos coiffeurs en attendant !"
	FallbackUnavailable   = "Désolé, notre conseiller IA est indisponible pour le moment. Essayez de consulter les galeries de nos coiffeurs !"
)

func ParseFaceShape(s string) (FaceShape, bool) { return parse(faceShapes, s) }
func ParseHairType(s string) (HairType, bool)   { return parse(hairTypes, s) }
func ParseOccasion(s string) (Occasion, bool)   { return parse(occasions, s) }

func parse[T ~string](values []T, s string) (T, bool) {
	s = strings.TrimSpace(s)
	for _, v := range values {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Generator — сервис генерации текста по промпту.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Advisor struct {
	gen     Generator
	log     *zap.Logger
	timeout time.Duration
}

// NewAdvisor создаёт советника. gen == nil означает «не настроен».
func NewAdvisor(gen Generator, log *zap.Logger, timeout time.Duration) *Advisor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Advisor{gen: gen, log: log, timeout: timeout}
}

// Advise возвращает рекомендацию или один из текстов-заглушек.
func (a *Advisor) Advise(ctx context.Context, face FaceShape, hair HairType, occasion Occasion) string {
	if a == nil || a.gen == nil {
		return FallbackNotConfigured
	}
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	text, err := a.gen.Generate(ctx, Prompt(face, hair, occasion))
	if err != nil {
		a.log.Warn("advice generation failed", zap.Error(err))
		return FallbackUnavailable
	}
	text = strings.TrimSpace(text)
	if text == "" {
		a.log.Warn("advice generation returned empty text")
		return FallbackUnavailable
	}
	return text
}

// Prompt строит запрос к модели.
func Prompt(face FaceShape, hair HairType, occasion Occasion) string {
	return fmt.Sprintf(
		"En tant qu'expert visagiste MyHairCut, suggère 3 coupes de cheveux idéales pour une personne "+
			"ayant un visage %s, des cheveux %s, pour une occasion de type %s. "+
			"Réponds en français de manière concise et amicale.",
		face, hair, occasion,
	)
}
