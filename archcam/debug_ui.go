package archcam

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ooftn/ecs/debugui"
)

func spawnCameraWindow(w *World) {
	w.Storage.Spawn(debugui.ImguiItem{
		Render: func() {
			imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(260, 170), imgui.CondOnce)

			if imgui.BeginV("Camera", nil, 0) {
				cam := w.Camera
				player := w.Player()
				center := cam.Center()
				bounds := cam.VisibleBounds()
				vp := cam.Adapter().Viewport()

				imgui.Text(fmt.Sprintf("Player: %.1f, %.1f", player.X(), player.Y()))
				imgui.Text(fmt.Sprintf("Center: %.1f, %.1f", center.X(), center.Y()))
				imgui.Text(fmt.Sprintf("Zoom: %.2f", cam.Zoom()))
				imgui.Separator()
				imgui.Text(fmt.Sprintf("Visible: %.0f,%.0f .. %.0f,%.0f",
					bounds.Min.X(), bounds.Min.Y(), bounds.Max.X(), bounds.Max.Y()))
				imgui.Text(fmt.Sprintf("Viewport: %v", vp))

				sched, store := w.Stats()
				imgui.Separator()
				imgui.Text(fmt.Sprintf("Entities: %d in %d archetypes", store.TotalEntityCount, store.ArchetypeCount))
				imgui.Text(fmt.Sprintf("Ticks: %d", sched.TotalExecutions/int64(max(sched.SystemCount, 1))))

				imgui.End()
			}
		},
	})
}
