// Package qrcode drives the reconstruction of damaged QR matrices: it picks
// orientations, repairs the function patterns, enumerates the format
// candidates that agree with the surviving format modules and decodes each
// one until a payload parses.
package qrcode

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/ericlevine/qrfix"
	"github.com/ericlevine/qrfix/charset"
	"github.com/ericlevine/qrfix/internal"
	"github.com/ericlevine/qrfix/qrcode/decoder"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Fixed is the outcome of a successful reconstruction.
type Fixed struct {
	Result *qrfix.Result
	// Matrix is the input turned into canonical orientation with its
	// function patterns repaired and the winning format field written.
	Matrix   *qrfix.Matrix
	Version  *decoder.Version
	Format   *decoder.FormatInformation
	Segments []internal.Segment
}

// Fixer reconstructs matrices. It is safe for concurrent use.
type Fixer struct {
	opts   qrfix.FixOptions
	dec    *decoder.Decoder
	logger *zap.Logger
}

// NewFixer creates a Fixer. A nil opts uses the defaults.
func NewFixer(opts *qrfix.FixOptions) *Fixer {
	f := &Fixer{}
	if opts != nil {
		f.opts = *opts
	}
	f.logger = f.opts.Logger
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	f.dec = decoder.NewDecoder(f.opts.Interleave)
	return f
}

// Fix reconstructs and decodes m. The input is never modified. When every
// attempt fails the error is a *qrfix.ReconstructionError listing them.
func (f *Fixer) Fix(m *qrfix.Matrix) (*Fixed, error) {
	if _, ok := charset.Lookup(f.opts.CharacterSet); !ok {
		return nil, fmt.Errorf("%w: %q", qrfix.ErrUnknownCharacterSet, f.opts.CharacterSet)
	}
	version, err := decoder.GetVersionForDimension(m.Dimension())
	if err != nil {
		return nil, err
	}
	log := f.logger.With(zap.Int("version", version.Number))
	log.Debug("finder patterns", zap.Stringers("found", decoder.FindFinderPatterns(m)))

	var attempts []qrfix.Attempt
	decoded := 0
	for _, turns := range f.orientations(m) {
		work := m.Clone()
		work.Rotate(turns)
		decoder.RepairFunctionPatterns(work, version)

		field := decoder.ReadFormatField(work)
		candidates := decoder.MatchFormatInformation(field)
		log.Debug("orientation",
			zap.Int("quarter_turns", turns),
			zap.Stringer("format_field", field),
			zap.Int("candidates", len(candidates)))
		if len(candidates) == 0 {
			attempts = append(attempts, qrfix.Attempt{QuarterTurns: turns, Err: qrfix.ErrNoConfigurationMatch})
			continue
		}

		outcomes := f.tryCandidates(work, version, candidates)
		for i, o := range outcomes {
			fi := candidates[i]
			decoded++
			if o.err != nil {
				log.Debug("attempt failed",
					zap.Int("quarter_turns", turns),
					zap.Stringer("format", fi),
					zap.Error(o.err))
				attempts = append(attempts, qrfix.Attempt{
					QuarterTurns: turns,
					ECLevel:      fi.ECLevel.String(),
					DataMask:     int(fi.DataMask),
					Err:          o.err,
				})
				continue
			}

			result := qrfix.NewResult(o.result.Text, o.result.RawBytes)
			result.ECLevel = o.result.ECLevel
			result.DataMask = o.result.DataMask
			result.QuarterTurns = turns
			result.Attempts = decoded
			log.Info("decoded",
				zap.Int("quarter_turns", turns),
				zap.Stringer("format", fi),
				zap.Int("attempts", result.Attempts))
			return &Fixed{
				Result:   result,
				Matrix:   o.matrix,
				Version:  version,
				Format:   fi,
				Segments: o.result.Segments,
			}, nil
		}
	}

	log.Debug("reconstruction failed", zap.Int("attempts", len(attempts)))
	return nil, &qrfix.ReconstructionError{Attempts: attempts}
}

// orientations returns the quarter turns to try, canonical first.
func (f *Fixer) orientations(m *qrfix.Matrix) []int {
	if !f.opts.TryAllOrientations {
		return []int{0}
	}
	missing := decoder.MissingCorners(m)
	if len(missing) == 0 {
		return []int{0, 1, 2, 3}
	}
	turns := make([]int, 0, len(missing))
	if containsCorner(missing, decoder.CornerBottomRight) {
		turns = append(turns, 0)
	}
	for _, c := range missing {
		if c != decoder.CornerBottomRight {
			turns = append(turns, c.QuarterTurns())
		}
	}
	return turns
}

func containsCorner(corners []decoder.Corner, c decoder.Corner) bool {
	for _, x := range corners {
		if x == c {
			return true
		}
	}
	return false
}

type outcome struct {
	result *internal.DecoderResult
	matrix *qrfix.Matrix
	err    error
}

// tryCandidates decodes work under each candidate format. Sequential runs
// stop at the first success; parallel runs decode every candidate and the
// caller takes the lowest-index success, so both report the same result.
func (f *Fixer) tryCandidates(work *qrfix.Matrix, version *decoder.Version, candidates []*decoder.FormatInformation) []outcome {
	if !f.opts.Parallel {
		outcomes := make([]outcome, 0, len(candidates))
		for _, fi := range candidates {
			o := f.tryCandidate(work, version, fi)
			outcomes = append(outcomes, o)
			if o.err == nil {
				break
			}
		}
		return outcomes
	}

	outcomes := make([]outcome, len(candidates))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, fi := range candidates {
		i, fi := i, fi
		g.Go(func() error {
			outcomes[i] = f.tryCandidate(work, version, fi)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func (f *Fixer) tryCandidate(work *qrfix.Matrix, version *decoder.Version, fi *decoder.FormatInformation) outcome {
	candidate := work.Clone()
	decoder.WriteFormatField(candidate, fi)
	result, err := f.dec.Decode(candidate, version, fi, f.opts.CharacterSet)
	if err != nil {
		return outcome{err: err}
	}
	return outcome{result: result, matrix: candidate}
}

// IsUnsupported reports whether err stems from a numeric or kanji segment.
func IsUnsupported(err error) bool {
	var re *qrfix.ReconstructionError
	if !errors.As(err, &re) {
		return errors.Is(err, qrfix.ErrUnsupportedMode)
	}
	for _, a := range re.Attempts {
		if errors.Is(a.Err, qrfix.ErrUnsupportedMode) {
			return true
		}
	}
	return false
}
