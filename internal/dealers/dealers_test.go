package dealers

import (
	"reflect"
	"testing"
)

func testDirectory() *Directory {
	return NewDirectory([]Dealer{
		{ID: 1, Name: "台北旗艦店", Area: "北區", IsActive: true},
		{ID: 2, Name: "桃園店", Area: "北區", IsActive: true},
		{ID: 3, Name: "台中店", Area: "中區", IsActive: true},
		{ID: 4, Name: "歇業店", Area: "東區", IsActive: false},
		{ID: 5, Name: "高雄店", Area: "南區", IsActive: true},
	})
}

func TestAreasFirstSeenActiveOnly(t *testing.T) {
	t.Parallel()

	areas := testDirectory().Areas()
	want := []string{"北區", "中區", "南區"}
	if !reflect.DeepEqual(areas, want) {
		t.Fatalf("areas = %v, want %v", areas, want)
	}
}

func TestInArea(t *testing.T) {
	t.Parallel()

	d := testDirectory()
	north := d.InArea("北區")
	if len(north) != 2 || north[0].Name != "台北旗艦店" || north[1].Name != "桃園店" {
		t.Fatalf("north dealers = %+v", north)
	}
	if east := d.InArea("東區"); len(east) != 0 {
		t.Fatalf("area with only inactive dealers must be empty, got %+v", east)
	}
}

func TestByName(t *testing.T) {
	t.Parallel()

	d := testDirectory()
	dealer, ok := d.ByName("台中店")
	if !ok || dealer.ID != 3 {
		t.Fatalf("lookup = %+v, %v", dealer, ok)
	}
	if _, ok := d.ByName("歇業店"); ok {
		t.Fatal("inactive dealer resolvable by name")
	}
	if !d.HasArea("南區") || d.HasArea("東區") {
		t.Fatal("HasArea must ignore inactive dealers")
	}
}
