package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	resend "github.com/gfl/fantasy-sync/repos/resend"
	slack "github.com/gfl/fantasy-sync/repos/slack"
	store "github.com/gfl/fantasy-sync/repos/store"

	auth "github.com/gfl/fantasy-sync/pkg/auth"
	timehelper "github.com/gfl/fantasy-sync/pkg/timeHelper"

	digest "github.com/gfl/fantasy-sync/services/digest"
	matches "github.com/gfl/fantasy-sync/services/matches"
	predictions "github.com/gfl/fantasy-sync/services/predictions"
	settlement "github.com/gfl/fantasy-sync/services/settlement"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	credentialsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	port := os.Getenv("PORT")
	allowOrigins := os.Getenv("CORS_HOSTS")
	webhookURL := os.Getenv("SLACK_WEBHOOK_URL")
	cronSecret := os.Getenv("CRON_SECRET")
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "gfl2k25.vercel.app"
	}

	location := timehelper.LoadLocation(os.Getenv("DIGEST_TZ"))

	credentialsOption := option.WithCredentialsJSON([]byte(credentialsJSON))

	firestoreClient, err := firestore.NewClient(ctx, projectID, credentialsOption)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	firebaseApp, err := firebase.NewApp(ctx, nil, credentialsOption)
	if err != nil {
		log.Fatalf("error initializing app: %v\n", err)
	}

	storeService := store.NewService(firestoreClient)
	slackService := slack.NewService(webhookURL)
	resendService := resend.NewService(splitList(os.Getenv("DIGEST_EMAILS")))

	settlementService := settlement.NewService(storeService, storeService)
	digestService := digest.NewService(storeService, storeService, storeService, slackService, resendService, location, appURL)
	predictionsService := predictions.NewService(storeService, storeService)
	matchesService := matches.NewService(storeService, storeService)

	router := gin.Default()

	if origins := splitList(allowOrigins); len(origins) > 0 {
		config := cors.DefaultConfig()
		config.AllowOrigins = origins
		config.AllowCredentials = true
		config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Access-Control-Allow-Origin"}
		router.Use(cors.New(config))
	}

	adminRouter := router.Group("/admin/v1")
	adminRouter.Use(auth.AuthMiddleware(firebaseApp), auth.AdminMiddleware(storeService))

	predictionsRouter := router.Group("/predictions/v1")
	predictionsRouter.Use(auth.AuthMiddleware(firebaseApp))

	matchesRouter := router.Group("/matches/v1")

	cronRouter := router.Group("/cron/v1")
	cronRouter.Use(auth.CronAuthMiddleware(cronSecret))

	settlement.NewHTTPHandler(settlement.HTTPOptions{
		Service: settlementService,
		Router:  adminRouter,
	})

	predictions.NewHTTPHandler(predictions.HTTPOptions{
		Service: predictionsService,
		Router:  predictionsRouter,
	})

	matches.NewHTTPHandler(matches.HTTPOptions{
		Service:     matchesService,
		Router:      matchesRouter,
		AdminRouter: adminRouter,
	})

	digest.NewHTTPHandler(digest.HTTPOptions{
		Service: digestService,
		Router:  cronRouter,
	})

	startDigestScheduler(digestService, location)

	log.Fatal(router.Run(":" + port))
}

// startDigestScheduler fires the digest once a day at DIGEST_HOUR in the
// pinned timezone, alongside the HTTP cron endpoint.
func startDigestScheduler(digestService *digest.Service, location *time.Location) {
	hour := 21
	if raw := os.Getenv("DIGEST_HOUR"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > 23 {
			log.Printf("Ignoring bad DIGEST_HOUR %q\n", raw)
		} else {
			hour = parsed
		}
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(location))
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(hour), 0, 0))),
		gocron.NewTask(func() {
			message, err := digestService.GenerateDailyDigest(context.Background(), time.Now())
			if err != nil {
				log.Printf("Scheduled digest failed: %v\n", err)
				return
			}
			log.Printf("Scheduled digest: %s\n", message)
		}),
	)
	if err != nil {
		log.Fatalf("Failed to schedule digest job: %v", err)
	}

	scheduler.Start()
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
