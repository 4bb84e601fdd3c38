// services/seeder.go
package services

import (
	"os"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/engineer-english/eigo_api/dto"
	"github.com/engineer-english/eigo_api/seed/seeders"
)

// SeederService exposes curriculum reconciliation to the running API. The
// same reconciler backs the standalone seed command.
type SeederService struct {
	appContext.DefaultService
	sqlSvc        *PostgresService
	monitoringSvc *MonitoringService
	contentSvc    *ContentService

	curriculumPath string
	seedOnStart    bool
}

const SEEDER_SVC = "seeder_svc"

func (svc SeederService) Id() string {
	return SEEDER_SVC
}

func (svc *SeederService) Configure(ctx *appContext.Context) error {
	svc.curriculumPath = os.Getenv("CURRICULUM_FILE")
	svc.seedOnStart = os.Getenv("SEED_ON_START") == "true"
	return svc.DefaultService.Configure(ctx)
}

func (svc *SeederService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	svc.contentSvc = svc.Service(CONTENT_SVC).(*ContentService)

	if svc.seedOnStart {
		result, err := svc.Reconcile()
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"lessons_created":   result.LessonsCreated,
			"phrases_created":   result.PhrasesCreated,
			"dialogues_created": result.DialoguesCreated,
		}).Info("Startup curriculum reconciliation finished")
	}

	return nil
}

// Reconcile loads the configured curriculum and reconciles the database
// against it.
func (svc *SeederService) Reconcile() (*dto.SeedResultResponse, error) {
	curriculum, err := seeders.LoadCurriculum(svc.curriculumPath)
	if err != nil {
		svc.monitoringSvc.RecordSeedRun("invalid_curriculum")
		return nil, err
	}

	result, err := seeders.NewCurriculumSeeder(svc.sqlSvc.Db(), curriculum).Seed()
	if err != nil {
		svc.monitoringSvc.RecordSeedRun("failure")
		return nil, svc.sqlSvc.HandleError(err)
	}

	svc.monitoringSvc.RecordSeedRun("success")
	svc.contentSvc.invalidateStats()

	return &dto.SeedResultResponse{
		LessonsCreated:   result.LessonsCreated,
		PhrasesCreated:   result.PhrasesCreated,
		DialoguesCreated: result.DialoguesCreated,
		PhrasesUpdated:   result.PhrasesUpdated,
		DialoguesUpdated: result.DialoguesUpdated,
	}, nil
}
