package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/royalcases/royal-cases-api/models"
)

// Quick utility to backfill the statusRank field on case documents written
// before the field existed. The general listing sorts on statusRank, so
// documents without it sink to the end until backfilled.
// Usage: go run scripts/backfill_status_rank.go
// Reads DB_URI and DB_NAME from the environment.
func main() {
	uri := os.Getenv("DB_URI")
	dbName := os.Getenv("DB_NAME")
	if uri == "" || dbName == "" {
		fmt.Println("Usage: DB_URI=mongodb://... DB_NAME=... go run scripts/backfill_status_rank.go")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		fmt.Printf("Error connecting: %v\n", err)
		os.Exit(1)
	}
	defer client.Disconnect(ctx)

	coll := client.Database(dbName).Collection("all-cases")

	statuses := []string{models.StatusPending, models.StatusRunning, models.StatusCompleted}
	var total int64
	for _, status := range statuses {
		res, err := coll.UpdateMany(ctx,
			bson.M{"status": status, "statusRank": bson.M{"$exists": false}},
			bson.M{"$set": bson.M{"statusRank": models.StatusRank(status)}},
		)
		if err != nil {
			fmt.Printf("Error backfilling %s: %v\n", status, err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d documents updated\n", status, res.ModifiedCount)
		total += res.ModifiedCount
	}

	// everything else ranks last
	res, err := coll.UpdateMany(ctx,
		bson.M{"status": bson.M{"$nin": statuses}, "statusRank": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"statusRank": models.StatusRank("")}},
	)
	if err != nil {
		fmt.Printf("Error backfilling remaining statuses: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("other: %d documents updated\n", res.ModifiedCount)
	total += res.ModifiedCount

	fmt.Printf("Done. %d documents backfilled.\n", total)
}
