package devserver

import "vitrine/internal/domain"

// seed наполняет каталог, чтобы клиент было чем кормить без удалённого API
func (s *Store) seed() {
	s.categories = []domain.Category{
		{ID: 1, Name: "Clothes", Image: "https://picsum.photos/id/237/600/400", Slug: "clothes"},
		{ID: 2, Name: "Electronics", Image: "https://picsum.photos/id/180/600/400", Slug: "electronics"},
		{ID: 3, Name: "Furniture", Image: "https://picsum.photos/id/116/600/400", Slug: "furniture"},
	}
	cats := map[int64]domain.Category{}
	for _, c := range s.categories {
		cats[c.ID] = c
	}
	s.products = []domain.Product{
		{ID: 1, Title: "Classic White Tee", Price: 35, Description: "Plain heavyweight cotton tee.", Category: cats[1], Images: []string{"https://picsum.photos/id/1059/600/600"}},
		{ID: 2, Title: "Monochrome Hoodie", Price: 120, Description: "Oversized fleece hoodie.", Category: cats[1], Images: []string{"https://picsum.photos/id/1060/600/600"}},
		{ID: 3, Title: "Wool Overcoat", Price: 540, Description: "Single-breasted overcoat in grey wool.", Category: cats[1], Images: []string{"https://picsum.photos/id/1062/600/600"}},
		{ID: 4, Title: "Wireless Headphones", Price: 260, Description: "Closed-back, 40h battery.", Category: cats[2], Images: []string{"https://picsum.photos/id/1080/600/600"}},
		{ID: 5, Title: "Mechanical Keyboard", Price: 180, Description: "Tenkeyless, hot-swap switches.", Category: cats[2], Images: []string{"https://picsum.photos/id/1081/600/600"}},
		{ID: 6, Title: "4K Monitor", Price: 620, Description: "27 inch IPS panel.", Category: cats[2], Images: []string{"https://picsum.photos/id/1082/600/600"}},
		{ID: 7, Title: "Oak Side Table", Price: 210, Description: "Solid oak, matte finish.", Category: cats[3], Images: []string{"https://picsum.photos/id/1084/600/600"}},
		{ID: 8, Title: "Lounge Chair", Price: 780, Description: "Moulded shell, leather cushion.", Category: cats[3], Images: []string{"https://picsum.photos/id/1085/600/600"}},
	}
}
