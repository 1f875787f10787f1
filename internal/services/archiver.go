package services

import (
	"context"
	"log"
	"sync"

	"alfredoptarigan/ai-interviewer/internal/models"
)

// Archiver persists completed interview reports off the request path. A full
// queue or a failed insert never affects the API response.
type Archiver interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(report *models.InterviewReport)
}

type archiver struct {
	reportRepo  ReportWriter
	jobQueue    chan *models.InterviewReport
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

// ReportWriter is the slice of the report repository the archiver needs.
type ReportWriter interface {
	Create(report *models.InterviewReport) error
}

func NewArchiver(reportRepo ReportWriter, concurrency int) Archiver {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &archiver{
		reportRepo:  reportRepo,
		jobQueue:    make(chan *models.InterviewReport, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Archiver.
func (a *archiver) Start(ctx context.Context) {
	log.Printf("🚀 Starting archiver with %d workers\n", a.concurrency)

	for i := 0; i < a.concurrency; i++ {
		a.wg.Add(1)
		go a.processReports(ctx, i+1)
	}
}

// Stop implements Archiver.
func (a *archiver) Stop() {
	log.Println("🛑 Stopping archiver...")
	close(a.stopChan)
	a.wg.Wait()
	log.Println("✅ Archiver stopped")
}

// Enqueue implements Archiver.
func (a *archiver) Enqueue(report *models.InterviewReport) {
	select {
	case a.jobQueue <- report:
	default:
		log.Printf("⚠️  Archive queue full, dropping report for session %s\n", report.SessionID)
	}
}

func (a *archiver) processReports(ctx context.Context, workerID int) {
	defer a.wg.Done()

	for {
		select {
		case <-a.stopChan:
			return
		case <-ctx.Done():
			return
		case report := <-a.jobQueue:
			if err := a.reportRepo.Create(report); err != nil {
				log.Printf("❌ Archiver #%d failed to store report for session %s: %v\n", workerID, report.SessionID, err)
			} else {
				log.Printf("💾 Archiver #%d stored report for session %s\n", workerID, report.SessionID)
			}
		}
	}
}
