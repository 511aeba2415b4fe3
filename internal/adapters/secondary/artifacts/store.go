package artifacts

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"vehicle-inference-service/internal/config"
	"vehicle-inference-service/internal/core/domain"
	"vehicle-inference-service/internal/core/ports/output"
)

// Store holds every artifact for the life of the process. Fields are set
// once in Load and never reassigned.
type Store struct {
	scaler    ports.Scaler
	fuel      ports.Regressor
	price     ports.PricePipeline
	reference ports.ReferenceData
	closers   []func() error
}

// NewStore wraps already-built artifacts.
func NewStore(scaler ports.Scaler, fuel ports.Regressor, price ports.PricePipeline, reference ports.ReferenceData) *Store {
	return &Store{scaler: scaler, fuel: fuel, price: price, reference: reference}
}

// Load reads the four artifacts concurrently. Any failure is an
// *domain.ArtifactLoadError and the caller must not start serving.
func Load(ctx context.Context, cfg *config.ArtifactsConfig) (*Store, error) {
	var (
		scaler    *StandardScaler
		fuel      ports.Regressor
		price     *LinearPipeline
		reference *ReferenceTable
		onnxModel *OnnxRegressor
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := LoadStandardScaler(cfg.ScalerPath)
		if err != nil {
			return loadError("scaler", cfg.ScalerPath, err)
		}
		if s.Width() != domain.FuelFeatureCount {
			return loadError("scaler", cfg.ScalerPath, errors.New("scaler must cover exactly 7 features"))
		}
		scaler = s
		logLoaded("scaler", cfg.ScalerPath)
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if isOnnx(cfg.FuelModelPath) {
			m, err := LoadOnnxRegressor(cfg.FuelModelPath, cfg.OnnxRuntimeLib, cfg.OnnxInputName, cfg.OnnxOutputName, domain.FuelFeatureCount)
			if err != nil {
				return loadError("fuel model", cfg.FuelModelPath, err)
			}
			onnxModel, fuel = m, m
		} else {
			m, err := LoadDenseNetwork(cfg.FuelModelPath, domain.FuelFeatureCount)
			if err != nil {
				return loadError("fuel model", cfg.FuelModelPath, err)
			}
			fuel = m
		}
		logLoaded("fuel model", cfg.FuelModelPath)
		return nil
	})

	g.Go(func() error {
		p, err := LoadLinearPipeline(cfg.PriceModelPath)
		if err != nil {
			return loadError("price model", cfg.PriceModelPath, err)
		}
		price = p
		logLoaded("price model", cfg.PriceModelPath)
		return nil
	})

	g.Go(func() error {
		r, err := LoadReferenceTable(cfg.ReferencePath)
		if err != nil {
			return loadError("reference data", cfg.ReferencePath, err)
		}
		reference = r
		log.WithField("rows", len(r.cars)).Info("reference data loaded")
		return nil
	})

	if err := g.Wait(); err != nil {
		if onnxModel != nil {
			_ = onnxModel.Close()
		}
		return nil, err
	}

	store := NewStore(scaler, fuel, price, reference)
	if onnxModel != nil {
		store.closers = append(store.closers, onnxModel.Close)
	}
	return store, nil
}

func (s *Store) FuelScaler() ports.Scaler        { return s.scaler }
func (s *Store) FuelModel() ports.Regressor      { return s.fuel }
func (s *Store) PriceModel() ports.PricePipeline { return s.price }
func (s *Store) Reference() ports.ReferenceData  { return s.reference }

// Close releases native resources (ONNX sessions). Call once at shutdown.
func (s *Store) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

func isOnnx(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".onnx")
}

func loadError(artifact, path string, err error) error {
	return &domain.ArtifactLoadError{Artifact: artifact, Path: path, Err: err}
}

func logLoaded(artifact, path string) {
	log.WithFields(log.Fields{"artifact": artifact, "path": path}).Info("artifact loaded")
}
