package message_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/oppnet/message"
	"github.com/sarchlab/oppnet/sim"
)

var _ = Describe("Message", func() {
	It("should expire after its TTL", func() {
		m := message.New("m", "A", "B", 10, 100, 20)

		at, ok := m.ExpiresAt()
		Expect(ok).To(BeTrue())
		Expect(at).To(Equal(sim.VTimeInSec(120)))
		Expect(m.Expired(119)).To(BeFalse())
		Expect(m.Expired(120)).To(BeTrue())
	})

	It("should never expire without a TTL", func() {
		m := message.New("m", "A", "B", 10, 0, 20)

		_, ok := m.ExpiresAt()
		Expect(ok).To(BeFalse())
		Expect(m.Expired(1e9)).To(BeFalse())
	})

	It("should replicate with independent state", func() {
		m := message.New("m", "A", "B", 10, 0, 0)
		m.Copies = 6
		m.Payload = &message.SpreadState{Sent: message.Sectors(0).With(2)}

		c := m.Replicate(3, &message.SpreadState{}, 5)

		Expect(c.ID).To(Equal("m"))
		Expect(c.Copies).To(Equal(3))
		Expect(c.Hops).To(Equal(1))
		Expect(c.ReceivedAt).To(Equal(sim.VTimeInSec(5)))
		Expect(c.Payload.(*message.SpreadState).Sent.Len()).To(Equal(0))
		Expect(m.Copies).To(Equal(6))
		Expect(m.Payload.(*message.SpreadState).Sent.Has(2)).To(BeTrue())
	})
})

var _ = Describe("Sectors", func() {
	It("should add and list sectors", func() {
		s := message.Sectors(0).With(0).With(3).With(7)

		Expect(s.Has(0)).To(BeTrue())
		Expect(s.Has(1)).To(BeFalse())
		Expect(s.Has(8)).To(BeFalse())
		Expect(s.Len()).To(Equal(3))
		Expect(s.List()).To(Equal([]int{0, 3, 7}))
	})

	It("should panic on sectors out of range", func() {
		Expect(func() { message.Sectors(0).With(8) }).To(Panic())
		Expect(func() { message.Sectors(0).With(-1) }).To(Panic())
	})

	It("should report payload kinds", func() {
		Expect((&message.SpreadState{}).Kind()).To(Equal(message.KindSpread))
		Expect(message.HistoryState{}.Kind()).To(Equal(message.KindHistory))
		Expect(message.KindSpread.String()).To(Equal("spread"))
	})
})

var _ = Describe("Ordering", func() {
	var msgs []*message.Message

	BeforeEach(func() {
		msgs = []*message.Message{
			msgAt("c", 30, 2),
			msgAt("a", 50, 0),
			msgAt("b", 10, 1),
		}
	})

	ids := func(list []*message.Message) []string {
		out := []string{}
		for _, m := range list {
			out = append(out, m.ID)
		}
		return out
	}

	It("should order by arrival", func() {
		message.FIFO.Order(msgs)
		Expect(ids(msgs)).To(Equal([]string{"a", "b", "c"}))
	})

	It("should order by size", func() {
		message.SmallestFirst.Order(msgs)
		Expect(ids(msgs)).To(Equal([]string{"b", "c", "a"}))
	})

	It("should shuffle reproducibly", func() {
		other := []*message.Message{msgs[2], msgs[0], msgs[1]}

		message.NewRandomOrdering(7).Order(msgs)
		message.NewRandomOrdering(7).Order(other)

		Expect(ids(msgs)).To(Equal(ids(other)))
	})

	It("should resolve queue modes", func() {
		o, err := message.OrderingFor(message.QueueSmallestFirst, 0)
		Expect(err).NotTo(HaveOccurred())
		o.Order(msgs)
		Expect(ids(msgs)).To(Equal([]string{"b", "c", "a"}))

		_, err = message.OrderingFor("lifo", 0)
		Expect(err).To(HaveOccurred())
	})
})
