package repository

import "greenshop/internal/domain"

// seedProducts returns the fixed catalog written on the first read of an
// empty store. Returned as a fresh slice so callers can mutate freely.
func seedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:            "1",
			Name:          "Áo Thun Cotton Organic Premium",
			Price:         150000,
			OriginalPrice: 250000,
			Image:         "https://picsum.photos/400/400?random=1",
			Rating:        4.8,
			Sold:          1200,
			Location:      "TP. Hồ Chí Minh",
			Description:   "Áo thun cotton 100% thoáng mát, thấm hút mồ hôi tốt. Form dáng unisex phù hợp cho cả nam và nữ.",
			Category:      "Fashion",
		},
		{
			ID:            "2",
			Name:          "Tai Nghe Bluetooth Chống Ồn",
			Price:         450000,
			OriginalPrice: 890000,
			Image:         "https://picsum.photos/400/400?random=2",
			Rating:        4.5,
			Sold:          850,
			Location:      "Hà Nội",
			Description:   "Tai nghe không dây công nghệ mới, pin trâu 20h, âm bass cực mạnh.",
			Category:      "Electronics",
		},
		{
			ID:            "3",
			Name:          "Kem Dưỡng Ẩm Trà Xanh",
			Price:         220000,
			OriginalPrice: 300000,
			Image:         "https://picsum.photos/400/400?random=3",
			Rating:        4.9,
			Sold:          5000,
			Location:      "Đà Nẵng",
			Description:   "Chiết xuất từ lá trà xanh tự nhiên, giúp làm dịu da và cấp ẩm tức thì.",
			Category:      "Beauty",
		},
		{
			ID:          "4",
			Name:        "Bình Giữ Nhiệt Lõi Thép",
			Price:       120000,
			Image:       "https://picsum.photos/400/400?random=4",
			Rating:      4.7,
			Sold:        300,
			Location:    "Hà Nội",
			Description: "Giữ nóng 12h, giữ lạnh 24h. An toàn cho sức khỏe.",
			Category:    "Home",
		},
		{
			ID:            "5",
			Name:          "Sách: Tư Duy Nhanh Và Chậm",
			Price:         180000,
			OriginalPrice: 200000,
			Image:         "https://picsum.photos/400/400?random=5",
			Rating:        5.0,
			Sold:          150,
			Location:      "TP. Hồ Chí Minh",
			Description:   "Cuốn sách bán chạy nhất về tâm lý học hành vi.",
			Category:      "Books",
		},
		{
			ID:            "6",
			Name:          "Giày Sneaker Thể Thao",
			Price:         550000,
			OriginalPrice: 900000,
			Image:         "https://picsum.photos/400/400?random=6",
			Rating:        4.6,
			Sold:          2100,
			Location:      "Hải Phòng",
			Description:   "Giày siêu nhẹ, đế êm, thích hợp chạy bộ và đi chơi.",
			Category:      "Fashion",
		},
	}
}

// seedCategories returns the fixed category set written on first read.
func seedCategories() []domain.CategoryItem {
	return []domain.CategoryItem{
		{ID: "Fashion", Label: "Thời Trang", Icon: "👕"},
		{ID: "Electronics", Label: "Điện Tử", Icon: "📱"},
		{ID: "Beauty", Label: "Sắc Đẹp", Icon: "💄"},
		{ID: "Home", Label: "Nhà Cửa", Icon: "🏠"},
		{ID: "Books", Label: "Sách", Icon: "📚"},
	}
}
