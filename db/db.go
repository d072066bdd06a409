package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	CartCollection     *mongo.Collection
	SessionCollection  *mongo.Collection
	OrderLogCollection *mongo.Collection
	Client             *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	CartCollection = Client.Database("moyodb").Collection("carts")
	SessionCollection = Client.Database("moyodb").Collection("sessions")
	OrderLogCollection = Client.Database("moyodb").Collection("orderlog")
}
