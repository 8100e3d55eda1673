package processor

import (
	"os"

	"github.com/ZacxDev/mp4-shrinker/internal/config"
	"github.com/ZacxDev/mp4-shrinker/internal/ffmpeg"
	"github.com/ZacxDev/mp4-shrinker/pkg/types"
	"github.com/gofrs/flock"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Process shrinks the input toward the target size.
//
// Each iteration encodes once and measures the result. Outputs inside the
// tolerance band end the run; otherwise the target is corrected by the
// observed ratio and the next iteration encodes again, up to
// config.MaxIterations. Superseded outputs are left on disk.
func (s *Shrinker) Process() (*types.Result, error) {
	inputPath := s.opts.InputPath
	if _, err := os.Stat(inputPath); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrInputNotFound, inputPath)
		}
		return nil, errors.WithStack(err)
	}

	unlock, err := s.lock(inputPath)
	if err != nil {
		return nil, err
	}
	defer unlock()

	metadata, err := s.prober.Probe(inputPath)
	if err != nil {
		return nil, err
	}
	s.reportSource(metadata)

	startTime, endTime := timeRange(metadata, s.opts.Start, s.opts.End)
	job := ffmpeg.EncodeJob{InputPath: inputPath}
	if startTime > 0 {
		job.Start = startTime
	}
	if endTime < metadata.Duration {
		job.Limit = endTime - startTime
	}

	result := &types.Result{}
	targetSize := s.opts.TargetSize

	for iteration := 1; iteration <= config.MaxIterations; iteration++ {
		params, err := Calculate(metadata, targetSize, s.opts.Start, s.opts.End)
		if err != nil {
			return nil, err
		}
		s.reportTarget(targetSize, endTime-startTime, params)

		job.OutputPath = OutputPath(inputPath, params)
		job.Width = params.Width
		job.Height = params.Height
		job.Bitrate = params.Bitrate

		log := s.log.WithFields(logrus.Fields{
			"iteration": iteration,
			"output":    job.OutputPath,
		})
		log.Infof("Processing video... (iteration %d)", iteration)

		if err := s.transcoder.Transcode(job); err != nil {
			return nil, err
		}

		outputSize, err := producedSize(job.OutputPath)
		if err != nil {
			return nil, err
		}
		result.Produced = append(result.Produced, job.OutputPath)
		result.OutputPath = job.OutputPath
		result.OutputSize = outputSize
		result.TargetSize = targetSize
		result.Iterations = iteration

		percentage := float64(outputSize) / float64(targetSize) * 100
		s.reportOutput(job.OutputPath, outputSize, percentage)

		if percentage >= config.ToleranceLow && percentage <= config.ToleranceHigh {
			result.Outcome = types.OutcomeConverged
			break
		}
		if iteration >= config.MaxIterations {
			log.Warn("Max iterations reached. Using best result.")
			result.Outcome = types.OutcomeMaxIterationsReached
			break
		}

		ratio := float64(targetSize) / float64(outputSize)
		if percentage > config.ToleranceHigh {
			log.Info("File is too large. Trying again with more aggressive settings...")
			targetSize = int64(float64(targetSize) * ratio * config.OversizeCorrection)
		} else {
			log.Info("File is too small. Trying again with less aggressive settings...")
			targetSize = int64(float64(targetSize) * ratio * config.UndersizeCorrection)
		}
	}

	return result, nil
}

// lock takes the per-input advisory lock and returns its release func.
func (s *Shrinker) lock(inputPath string) (func(), error) {
	fileLock := flock.New(LockPath(inputPath))
	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, errors.Wrapf(err, "acquire lock %s", fileLock.Path())
	}
	if !locked {
		return nil, errors.Wrap(ErrLocked, fileLock.Path())
	}

	return func() {
		if err := fileLock.Unlock(); err != nil {
			s.log.WithError(err).Warn("failed to release input lock")
		}
		if err := os.Remove(fileLock.Path()); err != nil && !os.IsNotExist(err) {
			s.log.WithError(err).Warn("failed to remove lock file")
		}
	}, nil
}

// producedSize checks that a successful transcode left a non-empty file behind.
func producedSize(outputPath string) (int64, error) {
	info, err := os.Stat(outputPath)
	if err != nil {
		return 0, errors.WithStack(&ffmpeg.TranscodeError{Output: outputPath, Err: errors.Wrap(err, "output file missing")})
	}
	if info.Size() == 0 {
		return 0, errors.WithStack(&ffmpeg.TranscodeError{Output: outputPath, Err: errors.New("output file is empty")})
	}
	return info.Size(), nil
}
