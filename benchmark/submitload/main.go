package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"liyu1981.xyz/dialog-service/pkg/api"
	"liyu1981.xyz/dialog-service/pkg/common"
	"liyu1981.xyz/dialog-service/pkg/condition"
	"liyu1981.xyz/dialog-service/pkg/dialog"
	"liyu1981.xyz/dialog-service/pkg/glucose"
	dialogGrpc "liyu1981.xyz/dialog-service/pkg/grpc"
)

var maxUsers int = 2000
var httpHostPort string = "127.0.0.1:1080"
var grpcHostPort string = "127.0.0.1:10801"

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

func main() {
	common.SetTestLoggerNop()

	userIDs := make([]string, maxUsers)
	for i := range maxUsers {
		userIDs[i] = uuid.NewString()
	}
	fmt.Printf("generated %v user IDs\n", maxUsers)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()

	evaluator, err := glucose.NewEvaluator(glucose.DefaultThresholds())
	if err != nil {
		log.Fatal(err)
	}
	httpCore := dialog.New(evaluator, api.NewClient("http://"+httpHostPort, 0, nil))
	grpcCore := dialog.New(evaluator, dialogGrpc.NewClient(conn))

	fmt.Printf("gRPC client created\n")

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := range maxUsers {
		wg.Add(1)
		go func() {
			insertPatient(userIDs[i])
			fmt.Printf("\rinserted patient profile for user %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rinserted patient profile for %v users: used time=%v seconds, throughput=%v action/second\n",
		maxUsers, usedTime.Seconds(), float64(maxUsers)/usedTime.Seconds(),
	)

	var submitted, alerted, warned atomic.Int64

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := range maxUsers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			core := httpCore
			if flipCoin() {
				core = grpcCore
			}
			result, err := core.Submit(context.Background(), userIDs[i], randomForm())
			if err != nil {
				panic(err)
			}
			submitted.Add(1)
			if result.Check != nil && result.Check.Notified {
				alerted.Add(1)
			}
			if len(result.Warnings) > 0 {
				warned.Add(1)
			}
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rsubmitted forms for %v users: used time=%v seconds, throughput=%v submit/second, doctor alerts=%v, with warnings=%v\n",
		submitted.Load(), usedTime.Seconds(), float64(submitted.Load())/usedTime.Seconds(), alerted.Load(), warned.Load(),
	)
}

func flipCoin() bool {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Int31n(100000)%2 == 0
}

func rndFloat64(min, max float64, decimal int) float64 {
	rndMu.Lock()
	defer rndMu.Unlock()
	val := min + rnd.Float64()*(max-min)
	multiplier := float64(math.Pow10(decimal))
	return float64(math.Round(float64(val)*float64(multiplier))) / multiplier
}

func insertPatient(userID string) {
	payload := map[string]string{
		"first_name":   "Load",
		"last_name":    userID[:8],
		"doctor_email": "doctor@example.com",
	}

	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s/patients/%s", httpHostPort, userID), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
}

func randomForm() condition.Form {
	now := time.Now().UTC().Truncate(time.Second)
	timing := "Pre-meal"
	if flipCoin() {
		timing = "Post-meal"
	}
	return condition.SimpleForm{
		SelectedDate: now,
		BloodSugarSection: condition.BloodSugarSection{
			BloodSugarTime:  now,
			BloodSugarLevel: fmt.Sprintf("%.1f", rndFloat64(2.0, 16.0, 1)),
			MealTiming:      timing,
		},
	}
}
