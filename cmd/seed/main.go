// Command seed populates the blog database with demo authors and posts.
package main

import (
	"context"
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/locks"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/seed"
	"inkwell/internal/service"
)

func main() {
	numAuthors := flag.Int("authors", 10, "Number of generated authors")
	postsPerAuthor := flag.Int("posts", 3, "Generated posts per author")
	unowned := flag.Int("unowned", 2, "Generated posts without an author")
	fixturesPath := flag.String("fixtures", "", "YAML fixtures file (default: built-in fixtures)")
	fakerSeed := flag.Int64("seed", 0, "Fake data seed (0 = random)")
	shouldClean := flag.Bool("clean", false, "Delete all authors and posts before seeding")
	flag.Parse()

	ctx := observability.EnsureCorrelationID(context.Background())

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	observability.SetLevel(cfg.LogLevel)

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName:  "inkwell-seed",
		Environment:  cfg.Env,
		Enabled:      cfg.TracingEnabled,
		Exporter:     cfg.TracingExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SamplerRatio: cfg.TracingSamplerRatio,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer shutdown(context.Background())

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.ApplySchema(ctx, db, cfg); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	var locker locks.Locker = locks.NewLocalLocker(cfg.NameLockWait())
	if cfg.RedisURL != "" {
		client, err := locks.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer client.Close()
		locker = locks.NewRedisLocker(client, cfg.NameLockTTL(), cfg.NameLockWait())
	}

	authorRepo := repository.NewAuthorRepository(db)
	s := seed.NewSeeder(db,
		service.NewAuthorService(authorRepo, locker),
		service.NewPostService(repository.NewPostRepository(db), authorRepo),
	)

	if *shouldClean {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	fx, err := seed.DefaultFixtures()
	if *fixturesPath != "" {
		fx, err = seed.LoadFixturesFile(*fixturesPath)
	}
	if err != nil {
		log.Fatalf("Failed to load fixtures: %v", err)
	}

	fixed, err := s.ApplyFixtures(ctx, fx)
	if err != nil {
		log.Fatalf("Fixture seeding failed: %v", err)
	}

	generated, err := s.SeedRandom(ctx, seed.NewFactory(*fakerSeed), seed.Options{
		NumAuthors:     *numAuthors,
		PostsPerAuthor: *postsPerAuthor,
		UnownedPosts:   *unowned,
	})
	if err != nil {
		log.Fatalf("Random seeding failed: %v", err)
	}

	log.Printf("Seeded %d authors and %d posts (%d/%d from fixtures)",
		fixed.Authors+generated.Authors, fixed.Posts+generated.Posts, fixed.Authors, fixed.Posts)
}
