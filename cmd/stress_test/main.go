// Command stress_test fires concurrent PlaceOrder calls at a running server.
// Half of them share one idempotency key, so exactly one of those may
// succeed; the rest use unique keys and must all succeed with a total of
// price x quantity.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/rl1809/cafe/internal/adapter/handler"
)

func main() {
	addr := flag.String("addr", "localhost:50051", "gRPC address of the cafe server")
	itemID := flag.String("item", "", "menu item id to order (required)")
	requests := flag.Int("requests", 50, "number of concurrent requests per group")
	quantity := flag.Int("quantity", 3, "quantity per order")
	flag.Parse()

	if *itemID == "" {
		log.Fatal("-item is required")
	}

	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer conn.Close()

	client := handler.NewOrderServiceClient(conn)
	runID := time.Now().Format("20060102150405")

	req := &handler.PlaceOrderRequest{
		Name:            "Stress Test",
		ContactNumber:   "000-0000",
		Email:           "stress@example.com",
		DeliveryMethod:  "Delivery",
		DeliveryAddress: "Load Lane 1",
		Order: []handler.OrderLineRequest{
			{MenuItem: *itemID, Quantity: handler.FlexInt(*quantity)},
		},
	}

	// Counters
	var sharedSuccess, sharedDuplicate, sharedOther atomic.Int32
	var uniqueSuccess, uniqueFail, wrongTotal atomic.Int32

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < *requests; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()

			ctx := handler.WithIdempotencyKey(context.Background(), "stress-shared-"+runID)
			_, err := client.PlaceOrder(ctx, req)
			switch status.Code(err) {
			case codes.OK:
				sharedSuccess.Add(1)
			case codes.AlreadyExists:
				sharedDuplicate.Add(1)
			default:
				sharedOther.Add(1)
			}
		}()

		go func(n int) {
			defer wg.Done()

			ctx := handler.WithIdempotencyKey(context.Background(), fmt.Sprintf("stress-%s-%d", runID, n))
			reply, err := client.PlaceOrder(ctx, req)
			if err != nil {
				uniqueFail.Add(1)
				return
			}
			uniqueSuccess.Add(1)

			line := reply.Order.Order[0]
			want := decimal.NewFromFloat(line.Price).Mul(decimal.NewFromInt(int64(line.Quantity)))
			if !want.Equal(decimal.NewFromFloat(reply.Order.TotalAmount)) {
				wrongTotal.Add(1)
			}
		}(i)
	}

	wg.Wait()
	elapsed := time.Since(start)

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Requests per group:  %d\n", *requests)
	fmt.Printf("Shared key success: %d\n", sharedSuccess.Load())
	fmt.Printf("Shared key dup:     %d\n", sharedDuplicate.Load())
	fmt.Printf("Shared key other:   %d\n", sharedOther.Load())
	fmt.Printf("Unique key success: %d\n", uniqueSuccess.Load())
	fmt.Printf("Unique key failed:  %d\n", uniqueFail.Load())
	fmt.Printf("Wrong totals:       %d\n", wrongTotal.Load())
	fmt.Printf("Duration:           %v\n", elapsed)
	fmt.Println("==========================================")

	// Assertions
	if sharedSuccess.Load() == 1 && sharedDuplicate.Load() == int32(*requests-1) {
		fmt.Println("PASS: exactly one order placed for the shared key")
	} else {
		fmt.Println("FAIL: shared key was not deduplicated (is REDIS_ADDR set on the server?)")
	}

	if uniqueSuccess.Load() == int32(*requests) && wrongTotal.Load() == 0 {
		fmt.Println("PASS: every unique order placed with an exact total")
	} else {
		fmt.Printf("FAIL: %d unique orders failed, %d had wrong totals\n", uniqueFail.Load(), wrongTotal.Load())
	}
}
