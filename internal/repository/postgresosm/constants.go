package postgresosm

const (
	SRID4326 = 4326

	// LimitPlaces - сколько мест возвращает один запрос, как у Text Search (3 страницы по 20)
	LimitPlaces = 60
)

const (
	planetPointTable   = "planet_osm_point"
	planetPolygonTable = "planet_osm_polygon"
)

// expressions для повторного использования в SQL
const (
	// categoryExpr - определяет категорию места на основе OSM тегов (приоритет слева направо)
	categoryExpr = `COALESCE(NULLIF(amenity,''), NULLIF(shop,''), NULLIF(tourism,''), NULLIF(leisure,''), 'other')`

	// placeSelect - точки и полигоны с именем, полигоны берутся по центроиду
	placeSelect = `
		SELECT osm_id, name, amenity, shop, tourism, leisure, tags, way FROM ` + planetPointTable + `
		WHERE name IS NOT NULL AND name <> ''
		UNION ALL
		SELECT osm_id, name, amenity, shop, tourism, leisure, tags, ST_PointOnSurface(way) AS way FROM ` + planetPolygonTable + `
		WHERE name IS NOT NULL AND name <> ''
		  AND (amenity IS NOT NULL OR shop IS NOT NULL OR tourism IS NOT NULL OR leisure IS NOT NULL)`
)

// querySynonyms - текстовые запросы, которые соответствуют нескольким OSM значениям
var querySynonyms = map[string][]string{
	"restaurant":  {"restaurant", "fast_food", "food_court"},
	"restaurants": {"restaurant", "fast_food", "food_court"},
	"food":        {"restaurant", "fast_food", "food_court", "cafe"},
	"cafe":        {"cafe", "coffee"},
	"coffee":      {"cafe", "coffee"},
	"bar":         {"bar", "pub", "biergarten"},
	"pub":         {"pub", "bar"},
	"hotel":       {"hotel", "hostel", "guest_house", "motel"},
	"pharmacy":    {"pharmacy", "chemist"},
	"supermarket": {"supermarket", "convenience", "grocery"},
	"museum":      {"museum", "gallery"},
	"park":        {"park", "garden"},
}
