package seed

import (
	"time"

	"pet-adoption-platform/internal/domain/appointments"
	"pet-adoption-platform/internal/domain/pets"
	"pet-adoption-platform/internal/domain/shop"

	"github.com/shopspring/decimal"
)

const (
	DemoUser1 = "demoUser1"
	DemoUser2 = "demoUser2"

	// DemoPassword es la clave de las dos cuentas demo (solo datos de ejemplo).
	DemoPassword = "petadopt-demo"
)

const day = 24 * time.Hour

func unsplash(photo string) string {
	return "https://images.unsplash.com/" + photo + "?auto=format&fit=crop&w=687&q=80"
}

// DemoUser describe las cuentas dueñas de las mascotas sembradas.
type DemoUser struct {
	ID    string
	Name  string
	Email string
}

func DemoUsers() []DemoUser {
	return []DemoUser{
		{ID: DemoUser1, Name: "Happy Tails Shelter", Email: "shelter@petadopt.dev"},
		{ID: DemoUser2, Name: "Whisker Haven Rescue", Email: "rescue@petadopt.dev"},
	}
}

// Pets: createdAt relativo a now, como en el catálogo de ejemplo.
func Pets(now time.Time) []pets.Pet {
	at := func(daysAgo int) time.Time { return now.Add(-time.Duration(daysAgo) * day) }
	items := []pets.Pet{
		{
			ID: "1", Name: "Max", Type: pets.TypeDog, Breed: "Golden Retriever", Age: 3, Gender: pets.GenderMale, Size: pets.SizeLarge,
			Description: "Max is a friendly and energetic Golden Retriever who loves to play fetch and go for long walks. He is great with children and other pets.",
			Location:    "New York, NY", Status: pets.StatusAvailable, CreatedAt: at(5),
			ImageURL: unsplash("photo-1552053831-71594a27632d"), OwnerUserID: DemoUser1,
		},
		{
			ID: "2", Name: "Bella", Type: pets.TypeCat, Breed: "Siamese", Age: 2, Gender: pets.GenderFemale, Size: pets.SizeMedium,
			Description: "Bella is a sweet and affectionate Siamese cat who enjoys cuddling and playing with toys. She is litter trained and gets along well with other cats.",
			Location:    "Los Angeles, CA", Status: pets.StatusAvailable, CreatedAt: at(3),
			ImageURL: unsplash("photo-1513360371669-4adf3dd7dff8"), OwnerUserID: DemoUser2,
		},
		{
			ID: "3", Name: "Charlie", Type: pets.TypeDog, Breed: "Beagle", Age: 1, Gender: pets.GenderMale, Size: pets.SizeMedium,
			Description: "Charlie is a playful and curious Beagle puppy who loves to explore. He is partially trained and eager to learn new commands.",
			Location:    "Chicago, IL", Status: pets.StatusPending, CreatedAt: at(10),
			ImageURL: unsplash("photo-1505628346881-b72b27e84530"), OwnerUserID: DemoUser1,
		},
		{
			ID: "4", Name: "Luna", Type: pets.TypeCat, Breed: "Maine Coon", Age: 4, Gender: pets.GenderFemale, Size: pets.SizeLarge,
			Description: "Luna is a majestic Maine Coon with a gentle personality. She enjoys lounging by windows and being brushed. She is well-behaved and independent.",
			Location:    "Seattle, WA", Status: pets.StatusAdopted, CreatedAt: at(15),
			ImageURL: unsplash("photo-1533738363-b7f9aef128ce"), OwnerUserID: DemoUser2,
		},
		{
			ID: "5", Name: "Rocky", Type: pets.TypeDog, Breed: "German Shepherd", Age: 5, Gender: pets.GenderMale, Size: pets.SizeLarge,
			Description: "Rocky is a loyal and intelligent German Shepherd who has been trained in basic commands. He is protective and would make an excellent family guardian.",
			Location:    "Denver, CO", Status: pets.StatusAvailable, CreatedAt: at(2),
			ImageURL: unsplash("photo-1589941013453-ec89f33b5e95"), OwnerUserID: DemoUser1,
		},
		{
			ID: "6", Name: "Coco", Type: pets.TypeOther, Breed: "Holland Lop Rabbit", Age: 1, Gender: pets.GenderFemale, Size: pets.SizeSmall,
			Description: "Coco is an adorable Holland Lop rabbit who loves to hop around and eat fresh vegetables. She is litter trained and enjoys being petted.",
			Location:    "Austin, TX", Status: pets.StatusAvailable, CreatedAt: at(7),
			ImageURL: unsplash("photo-1585110396000-c9ffd4e4b308"), OwnerUserID: DemoUser2,
		},
	}
	for i := range items {
		items[i].UpdatedAt = items[i].CreatedAt
	}
	return items
}

func Products() []shop.Product {
	price := decimal.RequireFromString
	return []shop.Product{
		{
			ID: "prod1", Name: "Premium Dog Food - Chicken & Rice", Category: "Food", Price: price("59.99"),
			Description: "High-quality dry dog food made with real chicken and wholesome rice. Suitable for all breeds and life stages. Provides complete and balanced nutrition.",
			ImageURL:    unsplash("photo-1587600954298-9731305f055e"),
			Stock:       50, Rating: 4.8, Reviews: 120, Tags: []string{"dog", "food", "dry food", "premium"},
		},
		{
			ID: "prod2", Name: "Interactive Cat Teaser Wand", Category: "Toys", Price: price("12.50"),
			Description: "Engage your cat in hours of fun with this interactive teaser wand. Features feathers and bells to stimulate natural hunting instincts.",
			ImageURL:    unsplash("photo-1592769606134-34b83ef61502"),
			Stock:       100, Rating: 4.5, Reviews: 85, Tags: []string{"cat", "toy", "interactive", "teaser"},
		},
		{
			ID: "prod3", Name: "Cozy Pet Bed - Medium", Category: "Accessories", Price: price("35.00"),
			Description: "A soft and comfortable bed for your furry friend. Made with plush materials and a non-slip bottom. Machine washable for easy cleaning.",
			ImageURL:    unsplash("photo-1580477880092-1296d807520d"),
			Stock:       30, Rating: 4.7, Reviews: 95, Tags: []string{"bed", "dog", "cat", "cozy", "accessory"},
		},
		{
			ID: "prod4", Name: "Grain-Free Salmon Cat Food", Category: "Food", Price: price("22.99"),
			Description: "Delicious and nutritious grain-free cat food with real salmon as the first ingredient. Supports healthy skin and coat.",
			ImageURL:    unsplash("photo-1626201496369-a09f96f198cf"),
			Stock:       75, Rating: 4.6, Reviews: 110, Tags: []string{"cat", "food", "grain-free", "salmon"},
		},
		{
			ID: "prod5", Name: "Durable Chew Toy for Dogs", Category: "Toys", Price: price("15.99"),
			Description: "A tough and durable chew toy designed for aggressive chewers. Helps clean teeth and promote healthy chewing habits.",
			ImageURL:    unsplash("photo-1604928149621-e301ef18e8e0"),
			Stock:       60, Rating: 4.3, Reviews: 70, Tags: []string{"dog", "toy", "chew", "durable"},
		},
		{
			ID: "prod6", Name: "Adjustable Nylon Pet Collar", Category: "Accessories", Price: price("9.99"),
			Description: "A stylish and durable nylon collar for dogs and cats. Adjustable for a comfortable fit and features a sturdy D-ring for leash attachment.",
			ImageURL:    unsplash("photo-1588012886040-489592e58390"),
			Stock:       120, Rating: 4.4, Reviews: 90, Tags: []string{"collar", "dog", "cat", "accessory", "nylon"},
		},
	}
}

// Services es el catálogo fijo de tratamientos veterinarios.
func Services() []appointments.Treatment {
	return []appointments.Treatment{
		{
			ID: "treat1", Name: "Annual Wellness Exams", Icon: "Stethoscope", Category: "Preventative Care",
			Description: "Comprehensive check-ups to monitor your pet's overall health, including physical examination, parasite screening, and discussion of preventative care.",
			Duration:    "30-45 mins", PriceRange: "$50 - $75",
		},
		{
			ID: "treat2", Name: "Vaccinations", Icon: "ShieldCheck", Category: "Preventative Care",
			Description: "Core and non-core vaccines tailored to your pet's lifestyle and risk factors to protect against common infectious diseases.",
			Duration:    "15-30 mins", PriceRange: "$20 - $40 per vaccine",
		},
		{
			ID: "treat3", Name: "Dental Cleaning & Care", Icon: "Tooth", Category: "Dental Care",
			Description: "Professional dental cleanings, polishing, and extractions if needed. We also provide guidance on at-home dental care.",
			Duration:    "1-3 hours (under anesthesia)", PriceRange: "$300 - $800",
		},
		{
			ID: "treat4", Name: "Spay & Neuter Surgery", Icon: "Scissors", Category: "Surgical Procedures",
			Description: "Routine surgical procedures to prevent unwanted litters and reduce the risk of certain health problems.",
			Duration:    "Varies", PriceRange: "$200 - $500",
		},
		{
			ID: "treat5", Name: "Microchipping", Icon: "ScanSearch", Category: "General Services",
			Description: "Permanent identification for your pet. A quick and simple procedure that greatly increases the chances of being reunited if lost.",
			Duration:    "10-15 mins", PriceRange: "$40 - $60",
		},
		{
			ID: "treat6", Name: "Nutritional Counseling", Icon: "Apple", Category: "Wellness & Consultation",
			Description: "Expert advice on the best diet for your pet based on their age, breed, health conditions, and lifestyle.",
			Duration:    "30-60 mins", PriceRange: "$75 - $150",
		},
		{
			ID: "treat7", Name: "Behavioral Consultation", Icon: "Brain", Category: "Wellness & Consultation",
			Description: "Addressing common behavioral issues such as anxiety, aggression, or destructive habits with professional guidance and training plans.",
			Duration:    "60-90 mins", PriceRange: "$100 - $200",
		},
		{
			ID: "treat8", Name: "Emergency Care (During Hours)", Icon: "TriangleAlert", Category: "Urgent Care",
			Description: "Urgent medical attention for acute illnesses or injuries during our regular operating hours. Please call ahead.",
			Duration:    "Varies", PriceRange: "Varies based on condition",
		},
	}
}

// Appointments: fechas relativas a now (una semana y dos semanas).
func Appointments(now time.Time) []appointments.Appointment {
	date := func(daysAhead int) time.Time {
		t := now.UTC().Add(time.Duration(daysAhead) * day)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return []appointments.Appointment{
		{
			ID: "appt1", UserID: DemoUser1, PetName: "Max", ServiceID: "treat1", Date: date(7), Time: "10:00 AM",
			Notes: "Max seems healthy, just a routine check.", Status: appointments.StatusScheduled,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "appt2", UserID: DemoUser2, PetName: "Bella", ServiceID: "treat2", Date: date(14), Time: "02:30 PM",
			Notes: "Booster shots due.", Status: appointments.StatusScheduled,
			CreatedAt: now, UpdatedAt: now,
		},
	}
}
