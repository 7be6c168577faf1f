package seeds

import (
	"context"
	"log"

	"academic_backend/internals/features/academic/service"
	academic "academic_backend/internals/seeds/academic"
)

func RunAllSeeds(ctx context.Context, svc *service.GradingService, path string) error {
	//* Academic
	log.Println("[SEED] academic fixtures...")
	if err := academic.SeedAcademicFromJSON(ctx, svc, path); err != nil {
		return err
	}
	log.Println("[SEED] done.")
	return nil
}
