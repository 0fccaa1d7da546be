package tracing

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/oppnet/datarecording"
)

var _ = Describe("Report", func() {
	var reader datarecording.DataReader

	BeforeEach(func() {
		path := filepath.Join(GinkgoT().TempDir(), "trace")
		recorder := datarecording.New(path)

		for _, t := range []struct {
			name  string
			entry any
		}{
			{TableMessages, MessageEntry{}},
			{TableTransfers, TransferEntry{}},
			{TableDeliveries, DeliveryEntry{}},
			{TableDrops, DropEntry{}},
		} {
			recorder.CreateTable(t.name, t.entry)
		}

		recorder.InsertData(TableMessages, MessageEntry{ID: "m1", Size: 10})
		recorder.InsertData(TableMessages, MessageEntry{ID: "m2", Size: 10})
		recorder.InsertData(TableMessages, MessageEntry{ID: "m3", Size: 10})

		recorder.InsertData(TableTransfers, TransferEntry{
			ID: "1", Message: "m1", Outcome: OutcomeDone})
		recorder.InsertData(TableTransfers, TransferEntry{
			ID: "2", Message: "m1", Final: true, Outcome: OutcomeDone})
		recorder.InsertData(TableTransfers, TransferEntry{
			ID: "3", Message: "m2", Final: true, Outcome: OutcomeDone})
		recorder.InsertData(TableTransfers, TransferEntry{
			ID: "4", Message: "m3", Outcome: OutcomeAborted, Reason: "stale transfer"})
		recorder.InsertData(TableTransfers, TransferEntry{
			ID: "5", Message: "m3", Outcome: OutcomeUnfinished})

		recorder.InsertData(TableDeliveries, DeliveryEntry{
			Message: "m1", Latency: 40, Hops: 2})
		recorder.InsertData(TableDeliveries, DeliveryEntry{
			Message: "m2", Latency: 10, Hops: 1})

		recorder.InsertData(TableDrops, DropEntry{Message: "m3", Reason: ReasonExpired})
		recorder.InsertData(TableDrops, DropEntry{Message: "m3", Reason: ReasonExpired})
		recorder.InsertData(TableDrops, DropEntry{Message: "m2", Reason: ReasonEvicted})
		Expect(recorder.Close()).To(Succeed())

		var err error
		reader, err = datarecording.OpenReader(path + ".sqlite3")
		Expect(err).NotTo(HaveOccurred())
		MapTables(reader)
	})

	AfterEach(func() {
		reader.Close()
	})

	It("should rebuild the statistics of a run", func() {
		s, err := ReadStats(context.Background(), reader)

		Expect(err).NotTo(HaveOccurred())
		Expect(s.Created).To(Equal(3))
		Expect(s.Started).To(Equal(5))
		Expect(s.Relayed).To(Equal(3))
		Expect(s.Aborted).To(Equal(1))
		Expect(s.Delivered).To(Equal(2))
		Expect(s.TotalLatency).To(Equal(50.0))
		Expect(s.TotalHops).To(Equal(3))
		Expect(s.Dropped).To(Equal(map[string]int{
			ReasonExpired: 2,
			ReasonEvicted: 1,
		}))
		Expect(s.DeliveryRatio()).To(BeNumerically("~", 2.0/3.0))
	})

	It("should list the slowest deliveries first", func() {
		slowest, err := SlowestDeliveries(context.Background(), reader, 1)

		Expect(err).NotTo(HaveOccurred())
		Expect(slowest).To(HaveLen(1))
		Expect(slowest[0].Message).To(Equal("m1"))
		Expect(slowest[0].Latency).To(Equal(40.0))
	})

	It("should list nothing when no delivery is asked for", func() {
		slowest, err := SlowestDeliveries(context.Background(), reader, 0)

		Expect(err).NotTo(HaveOccurred())
		Expect(slowest).To(BeEmpty())
	})

	It("should fail on unmapped tables", func() {
		empty := datarecording.NewReaderWithDB(nil)

		_, err := ReadStats(context.Background(), empty)

		Expect(err).To(HaveOccurred())
	})
})
