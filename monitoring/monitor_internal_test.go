package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/oppnet/routing"
	"github.com/sarchlab/oppnet/routing/contacthistory"
	"github.com/sarchlab/oppnet/sim"
	"github.com/sarchlab/oppnet/tracing"
	"github.com/sarchlab/oppnet/world"
)

type fixedStats struct {
	stats tracing.Stats
}

func (s fixedStats) Stats() tracing.Stats {
	return s.stats
}

var _ = Describe("Monitor", func() {
	var (
		engine *sim.SerialEngine
		w      *world.World
		m      *Monitor
	)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		m.router().ServeHTTP(rec, req)

		return rec
	}

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		w = world.MakeBuilder().
			WithEngine(engine).
			WithHosts(3, 1).
			WithBufferSizes(1000, 5000).
			WithFilterFactory(func() routing.NeighborFilter {
				return contacthistory.NewPolicy(contacthistory.DefaultConfig())
			}).
			Build("World")

		m = NewMonitor()
		m.RegisterEngine(engine)
		m.RegisterWorld(w)
	})

	It("should register the stores of all the nodes", func() {
		Expect(m.stores).To(HaveLen(3))
	})

	It("should fall back to a random port", func() {
		Expect(NewMonitor().WithPortNumber(80).portNumber).To(Equal(0))
		Expect(NewMonitor().WithPortNumber(8080).portNumber).To(Equal(8080))
	})

	It("should tell the time", func() {
		rec := get("/api/now")

		Expect(rec.Body.String()).To(Equal("{\"now\":0.0000000000}"))
	})

	It("should pause and continue the engine", func() {
		get("/api/pause")
		Expect(engine.IsPaused()).To(BeTrue())

		get("/api/continue")
		Expect(engine.IsPaused()).To(BeFalse())
	})

	It("should list the nodes", func() {
		rec := get("/api/nodes")

		nodes := []nodeRsp{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &nodes)).To(Succeed())
		Expect(nodes).To(HaveLen(3))
		Expect(nodes[0].Name).To(Equal("World.Host[0]"))
		Expect(nodes[2].Mule).To(BeTrue())
		Expect(nodes[2].BufferCap).To(Equal(5000))
	})

	It("should answer 404 for unknown nodes", func() {
		rec := get("/api/node/" + url.PathEscape("World.Host[9]"))

		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("should reject bad field requests", func() {
		rec := get("/api/field/" + url.PathEscape("{bad"))

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should list the buffers, fullest first", func() {
		r := w.Nodes()[1].Router()
		_, err := r.CreateMessage("m1", "h0", 500, 0)
		Expect(err).NotTo(HaveOccurred())

		rec := get("/api/buffers?sort=percent&limit=2")

		rsp := []struct {
			Buffer string `json:"buffer"`
			Level  int    `json:"level"`
		}{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp).To(HaveLen(2))
		Expect(rsp[0].Buffer).To(Equal("World.Host[1].Buffer"))
		Expect(rsp[0].Level).To(Equal(500))
	})

	It("should reject unknown sort methods", func() {
		rec := get("/api/buffers?sort=name")

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should select pages of stores", func() {
		Expect(m.sortAndSelectStores("level", 0, 0)).To(HaveLen(3))
		Expect(m.sortAndSelectStores("level", 2, 2)).To(HaveLen(1))
		Expect(m.sortAndSelectStores("level", 1, 5)).To(BeEmpty())
	})

	It("should report statistics", func() {
		Expect(get("/api/stats").Code).To(Equal(http.StatusNotFound))

		m.RegisterStats(fixedStats{stats: tracing.Stats{Created: 4, Delivered: 1}})
		rec := get("/api/stats")

		rsp := map[string]any{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp["Created"]).To(BeNumerically("==", 4))
		Expect(rsp["delivery_ratio"]).To(BeNumerically("==", 0.25))
	})

	It("should track progress bars", func() {
		bar := m.CreateProgressBar("Simulation", 100)
		bar.AdvanceTo(30)
		bar.AdvanceTo(10)

		Expect(bar.Finished).To(Equal(uint64(30)))
		Expect(get("/api/progress").Body.String()).To(ContainSubstring("\"finished\":30"))

		m.CompleteProgressBar(bar)
		Expect(m.progressBars).To(BeEmpty())
	})
})
