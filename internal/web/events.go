package web

import (
	"encoding/json"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/DixDev1621/portfolio/internal/ui"
)

// hxEvents is the browser side of the ui ports. Everything it receives is
// sent back as HX-Trigger events and acted on by static/site.js.
type hxEvents struct {
	catalog ui.Catalog
	events  map[string]any
}

func newHXEvents(catalog ui.Catalog) *hxEvents {
	return &hxEvents{catalog: catalog, events: map[string]any{}}
}

// Regions are rendered from the catalog, so catalog membership is region
// existence.
func (e *hxEvents) HasRegion(id string) bool { return e.catalog.Has(id) }

func (e *hxEvents) ScrollIntoView(id string) {
	e.events["scrollToSection"] = gin.H{"id": id, "behavior": "smooth"}
}

func (e *hxEvents) Dispatch(a ui.ComposeAction) {
	e.events["openCompose"] = gin.H{"href": a.String()}
}

func (e *hxEvents) Notify(n ui.Notification) {
	e.events["showToast"] = n
}

func (e *hxEvents) empty() bool { return len(e.events) == 0 }

// write sets the HX-Trigger header when there is anything to trigger.
func (e *hxEvents) write(c *gin.Context) {
	if e.empty() {
		return
	}
	b, err := json.Marshal(e.events)
	if err != nil {
		log.Printf("Error encoding HX-Trigger: %v", err)
		return
	}
	c.Header("HX-Trigger", string(b))
}
